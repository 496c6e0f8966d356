package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/openharvest/bargain/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// orphanGracePeriod keeps the sweep away from uploads belonging to
// registrations still in flight.
const orphanGracePeriod = time.Hour

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err := a.sched.AddFunc("@every 1h", func() {
		a.SchedOrphanFileSweepTask()
	})
	if err != nil {
		zap.S().Errorf("failed to register orphan sweep job: %v", err)
	}

	a.sched.Start()
}

// SchedOrphanFileSweepTask removes upload files whose database row was never
// committed, e.g. when a registration failed after a cleanup removal itself
// failed, or the process died mid-workflow.
func (a *Application) SchedOrphanFileSweepTask() {
	uploads := a.appConfig.Uploads
	a.sweepDir(uploads.ProductImageDir, a.productCoverReferenced)
	a.sweepDir(uploads.CommentImageDir, a.detailPhotoReferenced)
	a.sweepDir(uploads.ProfileImageDir, a.profilePhotoReferenced)
}

func (a *Application) sweepDir(dir string, referenced func(name string) bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-orphanGracePeriod)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if referenced(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			zap.L().Warn("orphan sweep remove failed",
				zap.String("dir", dir), zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		zap.L().Info("orphan sweep removed files", zap.String("dir", dir), zap.Int("count", removed))
	}
}

func (a *Application) productCoverReferenced(name string) bool {
	var count int64
	if err := a.gormDB.Model(&domain.Product{}).Where("photo = ?", name).Count(&count).Error; err != nil {
		// keep the file when the query fails
		return true
	}
	return count > 0
}

func (a *Application) detailPhotoReferenced(name string) bool {
	var count int64
	if err := a.gormDB.Model(&domain.ProductPhoto{}).Where("filename = ?", name).Count(&count).Error; err != nil {
		return true
	}
	return count > 0
}

func (a *Application) profilePhotoReferenced(name string) bool {
	var count int64
	if err := a.gormDB.Model(&domain.User{}).Where("photo = ?", name).Count(&count).Error; err != nil {
		return true
	}
	return count > 0
}
