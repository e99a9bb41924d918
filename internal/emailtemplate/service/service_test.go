package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/emailbuilder/emailbuilder/internal/emailtemplate"
	"github.com/emailbuilder/emailbuilder/internal/emailtemplate/repository"
	"github.com/emailbuilder/emailbuilder/internal/layout"
	"github.com/emailbuilder/emailbuilder/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type failingRepo struct{ err error }

func (f *failingRepo) Insert(ctx context.Context, t *emailtemplate.PersistedTemplate) (string, error) {
	return "", f.err
}

type fakeArchiver struct {
	keys []string
	body [][]byte
	err  error
}

func (f *fakeArchiver) Archive(ctx context.Context, key string, html []byte) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.body = append(f.body, html)
	return nil
}

func defaultLayout(t *testing.T) *layout.Layout {
	t.Helper()
	l, err := layout.Default()
	require.NoError(t, err)
	return l
}

func TestGetLayout(t *testing.T) {
	l := defaultLayout(t)
	svc := New(repository.NewMemoryRepo(), l)
	raw, err := svc.GetLayout(context.Background())
	require.NoError(t, err)
	require.Equal(t, l.Raw(), raw)

	_, err = New(repository.NewMemoryRepo(), nil).GetLayout(context.Background())
	require.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestSaveDraft(t *testing.T) {
	repo := repository.NewMemoryRepo()
	svc := New(repo, defaultLayout(t))
	ctx := context.Background()

	_, err := svc.SaveDraft(ctx, emailtemplate.Draft{Title: "", Content: "c", Footer: "f"})
	require.True(t, emailtemplate.IsValidationError(err))
	require.Empty(t, repo.All())

	before := testutil.ToFloat64(metrics.TemplateSaves.WithLabelValues("ok"))
	msg, err := svc.SaveDraft(ctx, emailtemplate.Draft{Title: "t", Content: "c", Footer: "f", ButtonText: "Go"})
	require.NoError(t, err)
	require.Equal(t, SavedMessage, msg)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.TemplateSaves.WithLabelValues("ok")))

	saved := repo.All()
	require.Len(t, saved, 1)
	require.Equal(t, "t", saved[0].Title)
	require.Equal(t, "Go", saved[0].ButtonText)
	require.Equal(t, emailtemplate.DefaultFontColor, saved[0].FontColor)
	require.False(t, saved[0].CreatedAt.IsZero())
}

func TestSaveDraftStoreFailure(t *testing.T) {
	cause := errors.New("connection reset")
	svc := New(&failingRepo{err: cause}, defaultLayout(t))
	_, err := svc.SaveDraft(context.Background(), emailtemplate.Draft{Title: "t", Content: "c", Footer: "f"})
	require.ErrorIs(t, err, ErrStoreWrite)
	require.ErrorIs(t, err, cause)
	require.False(t, emailtemplate.IsValidationError(err))
}

func TestRenderAndDownloadWithButton(t *testing.T) {
	svc := New(repository.NewMemoryRepo(), defaultLayout(t))
	out, err := svc.RenderAndDownload(context.Background(), emailtemplate.Draft{
		Title: "Hi", Content: "Body", Footer: "Bye", ButtonText: "Go", ButtonURL: "https://x.com",
	})
	require.NoError(t, err)
	require.Equal(t, DownloadFilename, out.Filename)
	html := string(out.HTML)
	for _, want := range []string{"Hi", "Body", "Bye", `href="https://x.com"`, ">Go</a>"} {
		require.Contains(t, html, want)
	}
}

func TestRenderAndDownloadWithoutButton(t *testing.T) {
	svc := New(repository.NewMemoryRepo(), defaultLayout(t))
	for _, d := range []emailtemplate.Draft{
		{Title: "Hi", Content: "Body", Footer: "Bye"},
		{Title: "Hi", Content: "Body", Footer: "Bye", ButtonText: "Go"},
		{Title: "Hi", Content: "Body", Footer: "Bye", ButtonURL: "https://x.com"},
	} {
		out, err := svc.RenderAndDownload(context.Background(), d)
		require.NoError(t, err)
		require.NotContains(t, string(out.HTML), "email-button")
		require.NotContains(t, string(out.HTML), "<a ")
	}
}

func TestRenderAndDownloadMissingFields(t *testing.T) {
	svc := New(repository.NewMemoryRepo(), defaultLayout(t))
	for _, d := range []emailtemplate.Draft{
		{Content: "c", Footer: "f"},
		{Title: "t", Footer: "f"},
		{Title: "t", Content: "c"},
	} {
		_, err := svc.RenderAndDownload(context.Background(), d)
		require.True(t, emailtemplate.IsValidationError(err), "draft %+v", d)
	}
}

func TestRenderAndDownloadKeepsContentMarkup(t *testing.T) {
	svc := New(repository.NewMemoryRepo(), defaultLayout(t))
	out, err := svc.RenderAndDownload(context.Background(), emailtemplate.Draft{Title: "t", Content: `<p class="x">Hello <b>there</b></p>`, Footer: "f"})
	require.NoError(t, err)
	require.Contains(t, string(out.HTML), `<p class="x">Hello <b>there</b></p>`)
}

func TestRenderAndDownloadNoLayout(t *testing.T) {
	svc := New(repository.NewMemoryRepo(), nil)
	_, err := svc.RenderAndDownload(context.Background(), emailtemplate.Draft{Title: "t", Content: "c", Footer: "f"})
	require.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestRenderAndDownloadArchives(t *testing.T) {
	arch := &fakeArchiver{}
	svc := New(repository.NewMemoryRepo(), defaultLayout(t), WithArchiver(arch))
	out, err := svc.RenderAndDownload(context.Background(), emailtemplate.Draft{Title: "t", Content: "c", Footer: "f"})
	require.NoError(t, err)
	require.Len(t, arch.keys, 1)
	require.True(t, strings.HasPrefix(arch.keys[0], "renders/"))
	require.True(t, strings.HasSuffix(arch.keys[0], ".html"))
	require.Equal(t, out.HTML, arch.body[0])
}

func TestRenderAndDownloadArchiveFailureIsNotFatal(t *testing.T) {
	before := testutil.ToFloat64(metrics.ArchiveFailures)
	svc := New(repository.NewMemoryRepo(), defaultLayout(t), WithArchiver(&fakeArchiver{err: errors.New("bucket gone")}))
	out, err := svc.RenderAndDownload(context.Background(), emailtemplate.Draft{Title: "t", Content: "c", Footer: "f"})
	require.NoError(t, err)
	require.NotEmpty(t, out.HTML)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.ArchiveFailures))
}

func TestPreview(t *testing.T) {
	svc := NewMemoryService()
	html, err := svc.Preview(context.Background(), emailtemplate.Draft{})
	require.NoError(t, err)
	require.Contains(t, html, "Your Title")
	require.Contains(t, html, "Your Footer")
	require.NotContains(t, html, "{{")

	_, err = New(repository.NewMemoryRepo(), nil).Preview(context.Background(), emailtemplate.Draft{})
	require.ErrorIs(t, err, ErrResourceUnavailable)
}
