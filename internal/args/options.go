package args

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

var (
	ErrMissingOutput = errors.New("missing required option -o/--output <path>")
	ErrMissingURL    = errors.New("missing required option -u/--url <url>")
)

// DefaultAlgorithm is used when --checksum is given without --algorithm.
const DefaultAlgorithm = "sha256"

// Options is the driver's view of the command line after alias merging.
type Options struct {
	Output    string
	URL       string
	Verbose   bool
	Checksum  string
	Algorithm string
	Telemetry string
	LogFile   string
	Help      bool
}

// NewFlagSet declares every option the driver understands. The set is used
// for its declarations and help text; tokens are matched by the Recognizer.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.StringP("output", "o", "", "Write the downloaded file to this path (required)")
	fs.StringP("url", "u", "", "URL to download (required)")
	fs.BoolP("verbose", "v", false, "Enable debug logging")
	fs.StringP("checksum", "c", "", "Verify the downloaded file against this expected hash")
	fs.StringP("algorithm", "a", DefaultAlgorithm, "Checksum algorithm (md5, sha1, sha256, sha384, sha512)")
	fs.StringP("telemetry", "t", "", "Write per-second download telemetry to this CSV file")
	fs.StringP("log", "l", "", "Write rotating JSON logs to this file")
	fs.BoolP("help", "h", false, "Show this help message")
	return fs
}

// Vocabulary lists the tokens of every flag in fs: the shorthand form
// first, then the long form, in declaration order.
func Vocabulary(fs *pflag.FlagSet) []string {
	var vocab []string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Shorthand != "" {
			vocab = append(vocab, "-"+f.Shorthand)
		}
		vocab = append(vocab, "--"+f.Name)
	})
	return vocab
}

// Resolve merges the short and long records of each flag in fs, stores the
// outcome in fs and returns it as Options. Help skips the required checks.
func Resolve(fs *pflag.FlagSet, res Result) (*Options, error) {
	var setErr error
	fs.VisitAll(func(f *pflag.Flag) {
		value, found := pick(res, f)
		if !found || setErr != nil {
			return
		}
		if f.Value.Type() == "bool" {
			value = "true"
		} else if value == "" {
			return
		}
		if err := fs.Set(f.Name, value); err != nil {
			setErr = fmt.Errorf("invalid value %q for --%s - %w", value, f.Name, err)
		}
	})
	if setErr != nil {
		return nil, setErr
	}

	opts := &Options{}
	opts.Output, _ = fs.GetString("output")
	opts.URL, _ = fs.GetString("url")
	opts.Verbose, _ = fs.GetBool("verbose")
	opts.Checksum, _ = fs.GetString("checksum")
	opts.Algorithm, _ = fs.GetString("algorithm")
	opts.Telemetry, _ = fs.GetString("telemetry")
	opts.LogFile, _ = fs.GetString("log")
	opts.Help, _ = fs.GetBool("help")

	if opts.Help {
		return opts, nil
	}

	var errs []error
	if opts.Output == "" {
		errs = append(errs, ErrMissingOutput)
	}
	if opts.URL == "" {
		errs = append(errs, ErrMissingURL)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return opts, nil
}

// pick prefers a non-empty long-form value over the shorthand one.
func pick(res Result, f *pflag.Flag) (string, bool) {
	long, _ := res.Lookup("--" + f.Name)
	var short Record
	if f.Shorthand != "" {
		short, _ = res.Lookup("-" + f.Shorthand)
	}
	switch {
	case long.Found && long.Value != "":
		return long.Value, true
	case short.Found && short.Value != "":
		return short.Value, true
	}
	return "", long.Found || short.Found
}
