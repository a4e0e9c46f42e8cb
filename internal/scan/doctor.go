// Package scan runs the crop doctor: it keeps a copy of each scan and asks
// the advisor for a diagnosis.
package scan

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"agrifields/internal/domain"
	"agrifields/internal/providers/gemini"
	"agrifields/internal/storage"
)

const uploadTimeout = 30 * time.Second

// Analyzer diagnoses crop photos.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, image string, lang domain.Language) string
}

type Doctor struct {
	analyzer Analyzer
	store    storage.ObjectStore
	logger   zerolog.Logger
	now      func() time.Time

	uploads sync.WaitGroup
}

// NewDoctor builds a Doctor. A nil store disables scan uploads.
func NewDoctor(analyzer Analyzer, store storage.ObjectStore, logger zerolog.Logger) *Doctor {
	return &Doctor{
		analyzer: analyzer,
		store:    store,
		logger:   logger.With().Str("component", "crop_doctor").Logger(),
		now:      time.Now,
	}
}

// Analyze starts a background upload of the scan for signed-in users and
// returns the advisor's diagnosis. The upload never delays or changes the
// result.
func (d *Doctor) Analyze(ctx context.Context, uid, image string, lang domain.Language) string {
	if uid != "" && d.store != nil {
		d.upload(ctx, uid, image)
	}
	return d.analyzer.AnalyzeImage(ctx, image, lang)
}

func (d *Doctor) upload(ctx context.Context, uid, image string) {
	key := storage.ScanKey(uid, d.now())
	d.uploads.Add(1)
	go func() {
		defer d.uploads.Done()
		data, _, err := gemini.DecodeImage(image)
		if err != nil {
			d.logger.Warn().Err(err).Str("uid", uid).Msg("scan upload skipped")
			return
		}
		uctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uploadTimeout)
		defer cancel()
		if _, err := d.store.Write(uctx, key, data); err != nil {
			d.logger.Error().Err(err).Str("uid", uid).Str("key", key).Msg("scan upload failed")
			return
		}
		d.logger.Debug().Str("uid", uid).Str("key", key).Int("bytes", len(data)).Msg("scan saved")
	}()
}

// Wait blocks until in-flight uploads finish.
func (d *Doctor) Wait() {
	d.uploads.Wait()
}
