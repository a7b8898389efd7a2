package stubgen

import (
	"fmt"
	"os"
)

// GenerateOption sets a field of GenerateOptions.
type GenerateOption func(*GenerateOptions) error

// WithArgs applies every GenerateOption among args, in order.  Other values
// are ignored, which lets callers pass the untyped arguments a
// subcommands.Command receives.
func WithArgs(args ...any) GenerateOption {
	return func(opts *GenerateOptions) error {
		for _, arg := range args {
			opt, ok := arg.(GenerateOption)
			if !ok || opt == nil {
				continue
			}
			if err := opt(opts); err != nil {
				return err
			}
		}
		return nil
	}
}

func WithDir(dir string) GenerateOption {
	return func(opts *GenerateOptions) error {
		opts.Dir = dir
		return nil
	}
}

func WithEnv(env []string) GenerateOption {
	return func(opts *GenerateOptions) error {
		opts.Env = env
		return nil
	}
}

// WithHeaderFile reads the header from path.  An empty path leaves the
// header unset.
func WithHeaderFile(path string) GenerateOption {
	return func(opts *GenerateOptions) error {
		if path == "" {
			return nil
		}
		header, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read header file %q: %w", path, err)
		}
		opts.Header = header
		return nil
	}
}

func WithPrefixFileName(prefix string) GenerateOption {
	return func(opts *GenerateOptions) error {
		opts.PrefixOutputFile = prefix
		return nil
	}
}

func WithTags(tags string) GenerateOption {
	return func(opts *GenerateOptions) error {
		opts.Tags = tags
		return nil
	}
}

// WithWDFallback sets Dir to the working directory when no other option set
// it.
func WithWDFallback() GenerateOption {
	return func(opts *GenerateOptions) error {
		if opts.Dir != "" {
			return nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		opts.Dir = wd
		return nil
	}
}
