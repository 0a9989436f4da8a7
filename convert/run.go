// Package convert implements "render" command: finds markup sources in
// files, directories and archives, renders them into view descriptor trees
// and writes tree dumps.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hidez8891/zip"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/ianaindex"

	"htmlview/archive"
	"htmlview/common"
	"htmlview/images"
	"htmlview/render"
	"htmlview/state"
)

// number of rendered documents remembered during single run
const renderCacheSize = 64

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Format, err = common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to text", zap.Error(err))
		env.Format = common.OutputFmtText
	}
	if cmd.IsSet("spacing") {
		env.Cfg.Document.BlockSpacing = cmd.Float("spacing")
	}
	env.NoDirs, env.Overwrite, env.Prefetch = cmd.Bool("nodirs"), cmd.Bool("overwrite"), cmd.Bool("prefetch")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	cp := cmd.String("force-zip-cp")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	renderer := render.NewRenderer(render.OptionsFromConfig(&env.Cfg.Document), env.Log.Named("render"))
	env.Docs = render.NewCache(renderer, renderCacheSize)

	if env.Prefetch {
		if env.Images, err = images.NewResolver(&env.Cfg.Images, env.Cfg.Document.Presentation.PlaceholderOpacity, env.Log.Named("images")); err != nil {
			return fmt.Errorf("unable to prepare image loading: %w", err)
		}
		defer func() {
			if er := env.Images.Close(); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to close image store: %w", er))
			}
		}()
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		hits, misses := env.Docs.Stats()
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)), zap.Int("rendered", misses), zap.Int("reused", hits))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process determines the input type (directory, archive, or single file) and
// processes it accordingly.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, filepath.ToSlash(tail), "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		kind, enc, err := isSourceFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if kind != kindNone && len(tail) == 0 {
			if err := processFile(ctx, head, filepath.Base(head), kind, enc, dst, log); err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			}
			break
		}
		return fmt.Errorf("input was not recognized as markup source (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir finds sources and archives under dir and processes them in
// natural order of their paths.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slices.SortFunc(paths, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})

	count := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if isArchive {
			count++
			if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			continue
		}

		kind, enc, err := isSourceFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		if kind == kindNone {
			log.Debug("Skipping file, not recognized as source or archive", zap.String("file", path))
			continue
		}

		count++
		if err := processFile(ctx, path, rel, kind, enc, dst, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
	}
	if count == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return nil
}

// processArchive walks all files inside archive, finds sources under
// "pathIn" and processes them.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	cp := state.EnvFromContext(ctx).CodePage

	err = archive.Walk(path, pathIn, func(archive string, f *zip.File, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", archive), zap.Error(err))
			return nil
		}

		kind, enc, err := isSourceInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", archive), zap.String("path", f.Name), zap.Error(err))
			return nil
		}
		if kind == kindNone {
			log.Debug("Skipping file, not recognized as source", zap.String("archive", archive), zap.String("file", f.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		pathInArchive := f.Name
		if cp != nil && !utf8.ValidString(pathInArchive) {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}
		// relative image references inside archives cannot be loaded
		if err := processSource(ctx, r, kind, enc, filepath.Join(pathOut, filepath.FromSlash(pathInArchive)), nil, dst, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.Name), zap.Error(err))
		}
		return nil
	})
	return err
}

func processFile(ctx context.Context, path, src string, kind srcKind, enc srcEncoding, dst string, log *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return processSource(ctx, file, kind, enc, src, fileBase(path), dst, log)
}

// readSource returns UTF-8 html text of the source, Markdown is converted to
// html. Without BOM html encoding is detected from its content.
func readSource(r io.Reader, kind srcKind, enc srcEncoding) (string, error) {
	rd := selectReader(r, enc)
	if kind == kindHTML && enc == encUnknown {
		var err error
		if rd, err = charset.NewReader(rd, "text/html"); err != nil {
			return "", fmt.Errorf("unable to detect source encoding: %w", err)
		}
	}
	data, err := io.ReadAll(rd)
	if err != nil {
		return "", fmt.Errorf("unable to read source: %w", err)
	}
	if kind == kindMarkdown {
		if data, err = markdownToHTML(data); err != nil {
			return "", err
		}
	}
	return string(data), nil
}

// processSource renders single source. "src" is part of the source path
// (always including file name) relative to the original path. When actual
// file was specified it will be just base file name without a path. When
// looking inside archive or directory it will be relative path inside archive
// or directory (including base file name). "base" is used to resolve relative
// image references, "dst" is the destination directory.
func processSource(ctx context.Context, r io.Reader, kind srcKind, enc srcEncoding, src string, base *url.URL, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var id, outputName string

	log.Info("Rendering starting", zap.String("from", src), zap.Stringer("kind", kind), zap.Stringer("encoding", enc))
	defer func(start time.Time) {
		// some of image processing libraries are not mature enough and if
		// multiple sources are being processed we do not want to stop.
		if r := recover(); r != nil {
			log.Error("Rendering ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("rendering panic: %v", r)
		} else if rerr == nil {
			log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("id", id))
		}
	}(time.Now())

	text, err := readSource(r, kind, enc)
	if err != nil {
		return err
	}

	doc, err := env.Docs.Document(text)
	if err != nil {
		return fmt.Errorf("unable to parse markup source (%s): %w", src, err)
	}
	id = doc.ID.String()

	outputName = buildOutputPath(doc, src, dst, env)

	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if env.Images != nil {
		prefetch(ctx, env.Images, doc, base, log)
	}

	out, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("unable to create output: %w", err)
	}
	if err := doc.Write(out, env.Format); err != nil {
		out.Close()
		return fmt.Errorf("unable to write output: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	// Store rendering source and result for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("source-%s.html", id), []byte(text))
		if err := env.Rpt.StoreCopy(fmt.Sprintf("result-%s%s", id, filepath.Ext(outputName)), outputName); err != nil {
			log.Warn("Unable to store result in report", zap.String("file", outputName), zap.Error(err))
		}
	}
	return nil
}
