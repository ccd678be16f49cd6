package main

import (
	"errors"

	"go.uber.org/zap"

	"github.com/hubastard/learngl/engine/config"
	"github.com/hubastard/learngl/engine/gfx/shader/shadertest"
)

var errBuildFailed = errors.New("one or more shader programs failed to build")

// check builds every configured program against the in-memory device.
func check(f config.File, log *zap.Logger) error {
	programs := buildPrograms(shadertest.New(), sourceFor(f), f, log)
	failed := 0
	for _, p := range programs {
		if p.usable() {
			log.Info("ok", zap.String("shader", p.pair.Name))
			continue
		}
		failed++
		log.Error("failed", zap.String("shader", p.pair.Name), zap.Error(p.err))
	}
	if failed > 0 {
		return errBuildFailed
	}
	return nil
}
