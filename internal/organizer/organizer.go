package organizer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"mythoscards/internal/errs"
	"mythoscards/internal/fileutil"
	"mythoscards/internal/logging"
)

// lockFileName guards the image directory against concurrent runs.
const lockFileName = ".mythoscards.lock"

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Organizer owns the physical file operations of one image directory.
type Organizer struct {
	imageDir  string
	backupDir string
	logger    *slog.Logger
	lock      *flock.Flock
	now       func() time.Time
}

// New builds an organizer over imageDir, keeping backups under backupDir.
func New(imageDir, backupDir string, logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Organizer{
		imageDir:  imageDir,
		backupDir: backupDir,
		logger:    logging.WithComponent(logger, "organizer"),
		lock:      flock.New(filepath.Join(imageDir, lockFileName)),
		now:       time.Now,
	}
}

// Lock acquires the image directory lock without blocking. A held lock
// means another run is renaming the same pool.
func (o *Organizer) Lock() error {
	ok, err := o.lock.TryLock()
	if err != nil {
		return errs.Wrap(errs.ErrIO, "organizer", "lock", "acquire directory lock", err)
	}
	if !ok {
		return errs.Wrap(errs.ErrConfiguration, "organizer", "lock",
			fmt.Sprintf("image directory is locked by another run: %s", o.imageDir), nil)
	}
	return nil
}

// Unlock releases the image directory lock.
func (o *Organizer) Unlock() {
	if err := o.lock.Unlock(); err != nil {
		o.logger.Warn("release directory lock", logging.Error(err))
	}
}

// ScanImages lists the supported image filenames in the directory, sorted.
func (o *Organizer) ScanImages() ([]string, error) {
	entries, err := os.ReadDir(o.imageDir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, "organizer", "scan", "read image directory", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := imageExtensions[ext]; ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	o.logger.Info("scanned image directory",
		logging.String("dir", o.imageDir),
		logging.Int("images", len(names)))
	return names, nil
}

// Backup copies the named files into a fresh dated backup folder and
// returns its path. With skipStamped set, files already carrying today's
// date prefix are left out; they were backed up by the run that stamped
// them.
func (o *Organizer) Backup(label string, names []string, skipStamped bool) (string, int, error) {
	datePrefix := o.datePrefix()
	folder := datePrefix + "_" + filepath.Base(o.imageDir)
	if label != "" {
		folder = datePrefix + "_" + label + "_" + filepath.Base(o.imageDir)
	}
	dir := filepath.Join(o.backupDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, errs.Wrap(errs.ErrIO, "organizer", "backup", "create backup directory", err)
	}

	copied := 0
	for _, name := range names {
		if skipStamped && strings.HasPrefix(name, datePrefix+"_") {
			continue
		}
		dst := filepath.Join(dir, name)
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		if err := fileutil.CopyFileVerified(filepath.Join(o.imageDir, name), dst); err != nil {
			return "", copied, errs.Wrap(errs.ErrIO, "organizer", "backup",
				fmt.Sprintf("back up %s", name), err)
		}
		copied++
	}

	o.logger.Info("backed up images",
		logging.String("dir", dir),
		logging.Int("copied", copied))
	return dir, copied, nil
}

// DatePrefixRenames plans the renames that stamp today's date prefix onto
// the given filenames. Names already stamped are left out of the plan.
func (o *Organizer) DatePrefixRenames(names []string) map[string]string {
	datePrefix := o.datePrefix()
	renames := make(map[string]string)
	for _, name := range names {
		if name == "" || strings.HasPrefix(name, datePrefix+"_") {
			continue
		}
		renames[name] = datePrefix + "_" + name
	}
	return renames
}

// Rename applies a rename plan inside the image directory. A missing source
// or an existing target skips that entry with a warning; one bad file never
// aborts the batch. The applied subset of the plan is returned.
func (o *Organizer) Rename(renames map[string]string) (map[string]string, error) {
	applied := make(map[string]string, len(renames))
	for _, oldName := range sortedPlanKeys(renames) {
		newName := renames[oldName]
		oldPath := filepath.Join(o.imageDir, oldName)
		newPath := filepath.Join(o.imageDir, newName)

		if _, err := os.Stat(oldPath); err != nil {
			o.logger.Warn("rename source missing", logging.String("file", oldName))
			continue
		}
		if _, err := os.Stat(newPath); err == nil {
			o.logger.Warn("rename target exists", logging.String("file", newName))
			continue
		}
		if err := os.Rename(oldPath, newPath); err != nil {
			return applied, errs.Wrap(errs.ErrIO, "organizer", "rename",
				fmt.Sprintf("rename %s", oldName), err)
		}
		applied[oldName] = newName
		o.logger.Info("renamed image",
			logging.String("from", oldName),
			logging.String("to", newName))
	}
	return applied, nil
}

func (o *Organizer) datePrefix() string {
	return o.now().Format("20060102")
}

func sortedPlanKeys(renames map[string]string) []string {
	keys := make([]string, 0, len(renames))
	for key := range renames {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
