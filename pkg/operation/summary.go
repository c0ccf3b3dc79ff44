package operation

import (
	"time"

	"github.com/walteh/formatrc/pkg/log"
)

// slowRunThreshold is the total duration above which a tip is printed.
const slowRunThreshold = 5 * time.Second

// 📊 summarize prints the statistics of a finished run
func (o *Orchestrator) summarize(logger *log.Logger, ignorePatterns []string) {
	s := o.stats

	logger.Header("📊 Formatting Summary")
	logger.Infof("Total files processed: %d", s.TotalFiles)
	logger.Infof("Total duration: %.0fms", s.TotalDurationMs())
	logger.Infof("Successful operations: %d", s.SuccessCount)
	if s.ErrorCount > 0 {
		logger.Warningf("Operations with issues: %d", s.ErrorCount)
	}
	if s.SkippedCount > 0 {
		logger.Infof("Skipped file types (no files found): %d", s.SkippedCount)
	}
	logger.Infof("Ignored %d pattern(s) during processing", len(ignorePatterns))
	logger.LogNewline()

	switch {
	case s.TotalFiles > 0 && s.ErrorCount == 0:
		logger.Success("All formatting completed! Your code is now beautifully formatted ✨")
	case s.TotalFiles > 0:
		logger.Warning("Formatting completed with some issues. Please review the logs. 🧐")
	default:
		logger.Info("No files found to format in this directory")
	}

	if s.TotalDuration > slowRunThreshold && s.TotalFiles > 0 {
		logger.Infof("💡 Tip: For faster formatting, consider optimizing your %s patterns", o.opts.Resolver.FileName())
	}

	logger.LogNewline()
	logger.Infof("Formatting session completed at %s", logger.Timestamp())
	logger.LogNewline()
}
