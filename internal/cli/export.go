package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/bulk"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/engine"
)

// newExportCmd creates the 'export' command.
func newExportCmd(opts *rootOptions) *cobra.Command {
	var flags criteriaFlags
	var output string
	var ids []string

	cmd := &cobra.Command{
		Use:   "export [query...]",
		Short: "Export search results to a JSON file",
		Long: `Run a search and write the results as a JSON export document with
the query, the filters and the exported quotes.

With --ids only those quotes are exported, in the given order; ids that are
not in the corpus are skipped. The default file name is
quotes-export-YYYY-MM-DD.json in the current directory.`,
		Example: `  quote-discovery export courage
  quote-discovery export --author "Seneca" --output ./seneca.json
  quote-discovery export --ids q1,q7,q9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.criteria(args)
			if err != nil {
				return err
			}
			if !c.HasIntent() && len(ids) == 0 {
				return fmt.Errorf("nothing to export: pass a query, a filter or --ids")
			}

			dl := &fileDownloader{path: output}
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				var res bulk.Result
				err := a.session.Do(func(e *engine.Engine) error {
					e.Search(c)
					for _, id := range ids {
						e.Select(id)
					}
					var runErr error
					res, runErr = e.RunBulk(cmd.Context(), bulk.Operation{Kind: bulk.KindExport})
					return runErr
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %s to %s\n", plural(len(res.Succeeded), "quote"), dl.written)
				return nil
			}, engine.WithDownloader(dl))
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: ./quotes-export-YYYY-MM-DD.json)")
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "Export only these quote IDs")

	return cmd
}

// fileDownloader writes export documents to disk under an exclusive lock.
type fileDownloader struct {
	// path overrides the suggested file name when set.
	path    string
	written string
}

func (d *fileDownloader) Download(ctx context.Context, filename string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := d.path
	if target == "" {
		target = filename
	}
	target = filepath.Clean(target)
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	lockFile, err := acquireFileLock(target)
	if err != nil {
		return fmt.Errorf("failed to acquire file lock: %w", err)
	}
	defer releaseFileLock(lockFile)

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write export: %w", err)
	}
	d.written = target
	return nil
}

// acquireFileLock takes a non-blocking exclusive lock on path + ".lock".
func acquireFileLock(path string) (*os.File, error) {
	lockFile, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := unix.Flock(int(lockFile.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		lockFile.Close()
		return nil, fmt.Errorf("another export to this file is in progress: %w", err)
	}
	return lockFile, nil
}

// releaseFileLock unlocks and removes the lock file.
func releaseFileLock(lockFile *os.File) error {
	if lockFile == nil {
		return nil
	}
	lockPath := lockFile.Name()
	unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)
	lockFile.Close()
	return os.Remove(lockPath)
}
