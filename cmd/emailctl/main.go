// Command emailctl drives the email template editor from the command line:
// it previews a draft against the service's layout, saves it, or downloads
// the rendered HTML.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/emailbuilder/emailbuilder/internal/client"
	"github.com/emailbuilder/emailbuilder/internal/editor"
	"github.com/emailbuilder/emailbuilder/internal/layout"
	"github.com/emailbuilder/emailbuilder/pkg/logger"
)

func main() {
	server := flag.String("server", envOr("EMAILBUILDER_URL", "http://localhost:3000"), "template service base URL")
	title := flag.String("title", "", "email title")
	content := flag.String("content", "", "email body (may contain HTML)")
	footer := flag.String("footer", "", "footer text")
	image := flag.String("image", "", "absolute image URL")
	buttonText := flag.String("button-text", "", "call-to-action label")
	buttonURL := flag.String("button-url", "", "call-to-action link")
	out := flag.String("out", "", "output file (preview: stdout if empty; download: name sent by the service)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: emailctl [flags] preview|save|download\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	logger.Init(os.Getenv("LOG_LEVEL"))

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ed := editor.New()
	fields := []struct{ name, value string }{
		{editor.FieldTitle, *title},
		{editor.FieldContent, *content},
		{editor.FieldFooter, *footer},
		{editor.FieldButtonText, *buttonText},
		{editor.FieldButtonURL, *buttonURL},
	}
	for _, f := range fields {
		if err := ed.UpdateField(f.name, f.value); err != nil {
			logger.Fatalf("%v", err)
		}
	}
	if *image != "" {
		ed.ToggleImageSection()
		ed.SetImageInput(*image)
		if err := ed.SubmitImageURL(ed.ImageInput()); err != nil {
			logger.Fatalf("%s: %v", ed.Message().Text, err)
		}
	}
	if *buttonText != "" || *buttonURL != "" {
		ed.ToggleButtonSection()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	api := client.New(*server)

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "preview":
		err = runPreview(ctx, api, ed, *out)
	case "save":
		err = runSave(ctx, api, ed)
	case "download":
		err = runDownload(ctx, api, ed, *out)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		if m := ed.Message(); m.Kind == editor.MessageError {
			logger.Fatalf("%s: %v", m.Text, err)
		}
		logger.Fatalf("%v", err)
	}
	if m := ed.Message(); m.Kind == editor.MessageSuccess {
		fmt.Println(m.Text)
	}
}

func runPreview(ctx context.Context, api *client.Client, ed *editor.Editor, out string) error {
	raw, err := api.GetLayout(ctx)
	if err != nil {
		ed.SetError("Failed to load template")
		return err
	}
	lay, err := layout.Parse(raw)
	if err != nil {
		return err
	}
	html, err := ed.Preview(lay)
	if err != nil {
		return err
	}
	ed.ClearMessage()
	if out == "" {
		fmt.Println(html)
		return nil
	}
	return os.WriteFile(out, []byte(html), 0o644)
}

func runSave(ctx context.Context, api *client.Client, ed *editor.Editor) error {
	ed.ClearMessage()
	msg, err := api.SaveDraft(ctx, ed.Payload())
	if err != nil {
		ed.SetError("Failed to save template. Please add title, content and footer")
		return err
	}
	ed.SetSuccess(msg)
	return nil
}

func runDownload(ctx context.Context, api *client.Client, ed *editor.Editor, out string) error {
	ed.ClearMessage()
	if err := ed.CheckRequired(); err != nil {
		return err
	}
	html, name, err := api.RenderAndDownload(ctx, ed.Payload())
	if err != nil {
		ed.SetError("Failed to download template")
		return err
	}
	if out == "" {
		out = name
	}
	if err := os.WriteFile(out, html, 0o644); err != nil {
		return err
	}
	ed.SetSuccess("Template downloaded successfully! (" + out + ")")
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
