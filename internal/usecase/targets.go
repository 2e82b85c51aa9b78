package usecase

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"StarSpin/internal/domain/models"
	"StarSpin/internal/service/lightcurve"
	"StarSpin/pkg/util"
)

// LoadTargets builds the target list for a batch run. When listFile is
// set it holds one light-curve filename per line (blank lines and
// #-comments skipped); otherwise every .csv under dataDir is taken.
// defaultFormat applies when the filename itself does not reveal one.
func LoadTargets(listFile, dataDir, defaultFormat string) ([]models.Target, error) {
	var paths []string

	if listFile != "" {
		f, err := os.Open(listFile)
		if err != nil {
			return nil, fmt.Errorf("open target list: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			paths = append(paths, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read target list: %w", err)
		}
	} else {
		matches, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
		if err != nil {
			return nil, fmt.Errorf("scan data dir: %w", err)
		}
		for _, m := range matches {
			paths = append(paths, filepath.Base(m))
		}
		sort.Strings(paths)
	}

	targets := make([]models.Target, 0, len(paths))
	for _, p := range paths {
		format := lightcurve.DetectFormat(p)
		if format == "" {
			format = defaultFormat
		}
		targets = append(targets, models.Target{
			ID:     util.TargetID(p),
			Path:   p,
			Format: format,
		})
	}
	return targets, nil
}
