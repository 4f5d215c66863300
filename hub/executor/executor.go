package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/skymkmk/domain-list-to-srs/common/batch"
	"github.com/skymkmk/domain-list-to-srs/component/resource"
	"github.com/skymkmk/domain-list-to-srs/component/srs"
	"github.com/skymkmk/domain-list-to-srs/config"
	C "github.com/skymkmk/domain-list-to-srs/constant"
	"github.com/skymkmk/domain-list-to-srs/log"
	"github.com/skymkmk/domain-list-to-srs/rules/dlc"

	"github.com/puzpuzpuz/xsync/v3"
)

const dirMode os.FileMode = 0o755

var (
	ErrOutputExists    = errors.New("output path already exists")
	ErrOutputCollision = errors.New("output file produced twice")
)

// Report summarizes one conversion run.
type Report struct {
	Inputs  int
	Outputs int
	Rules   int
}

// PruneOutputDir makes path an empty directory. An existing directory is
// only removed when force is set.
func PruneOutputDir(path string, force bool) error {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("output path %s is not a directory and a file already exists there", path)
		}
		if !force {
			return fmt.Errorf("%w: %s, remove it or run with --force", ErrOutputExists, path)
		}
		log.Warnln("Removing existing output dir %s", path)
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	case !os.IsNotExist(err):
		return err
	}
	return os.MkdirAll(path, dirMode)
}

// OutputName returns the SRS file name of one rule-set of a source file.
func OutputName(file, ruleSet string) string {
	if ruleSet == C.DefaultRuleSetName {
		return file + ".srs"
	}
	return file + "@" + ruleSet + ".srs"
}

// Run converts every regular file of cfg.DataPath into SRS files under
// cfg.OutputPath. The first failure cancels the remaining work.
func Run(ctx context.Context, cfg *config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	files, err := inputFiles(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	if err := PruneOutputDir(cfg.OutputPath, cfg.Force); err != nil {
		return nil, err
	}

	concurrency := cfg.Concurrency
	if concurrency == 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	c := &converter{
		outputDir: cfg.OutputPath,
		claimed:   xsync.NewMapOf[string, string](),
		outputs:   xsync.NewCounter(),
		rules:     xsync.NewCounter(),
	}

	b, ctx := batch.New[int](ctx, batch.WithConcurrencyNum[int](concurrency))
	for _, name := range files {
		name := name
		b.Go(name, func() (int, error) {
			return c.convertFile(ctx, filepath.Join(cfg.DataPath, name), name)
		})
	}
	if err := b.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Inputs:  len(files),
		Outputs: int(c.outputs.Value()),
		Rules:   int(c.rules.Value()),
	}
	log.Infoln("Converted %d files into %d rule-sets (%d rules)", report.Inputs, report.Outputs, report.Rules)
	return report, nil
}

func inputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		mode := entry.Type()
		if mode&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				return nil, err
			}
			mode = info.Mode()
		}
		if !mode.IsRegular() {
			log.Debugln("Skip %s: not a regular file", path)
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

type converter struct {
	outputDir string
	claimed   *xsync.MapOf[string, string]
	outputs   *xsync.Counter
	rules     *xsync.Counter
}

func (c *converter) convertFile(ctx context.Context, path, name string) (int, error) {
	ruleSets, err := dlc.ParseFile(path)
	if err != nil {
		return 0, err
	}

	written := 0
	for pair := ruleSets.Oldest(); pair != nil; pair = pair.Next() {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		outName := OutputName(name, pair.Key)
		if owner, loaded := c.claimed.LoadOrStore(outName, name); loaded {
			return written, fmt.Errorf("%w: %s from %s and %s", ErrOutputCollision, outName, owner, name)
		}

		rule := pair.Value
		if rule.IsEmpty() {
			log.Warnln("[SRS] %s has no rule", outName)
		}
		out := filepath.Join(c.outputDir, outName)
		err := resource.SafeWrite(out, func(w io.Writer) error {
			return srs.Write(w, rule)
		})
		if err != nil {
			return written, fmt.Errorf("write %s: %w", out, err)
		}
		log.Debugln("[SRS] %s: %d domains, %d suffixes, %d keywords, %d regexps", outName,
			rule.Domain.Len(), rule.DomainSuffix.Len(), rule.DomainKeyword.Len(), rule.DomainRegex.Len())

		c.outputs.Inc()
		c.rules.Add(int64(rule.Count()))
		written++
	}
	return written, nil
}
