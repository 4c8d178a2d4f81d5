package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/IT-Nick/quizbot/internal/infra/config"
)

// Export пишет текущий документ хранилища в w в виде JSON с отступами
func Export(ctx context.Context, cfg *config.Config, w io.Writer) error {
	gw, err := OpenGateway(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer gw.Close()

	doc, err := gw.Load(ctx)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	_, _ = fmt.Fprintln(w)
	return nil
}
