package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vova616/ibxmsample"
	"github.com/vova616/ibxmsample/analysis"
	"github.com/vova616/ibxmsample/load"
)

const usage = `usage: ibxmsample [flags] <command> [args]

commands:
  info <file>            print the prepared sample
  render <in> <out.wav>  play the sample at --key and write a WAV file
  tables                 print gain and cutoff of every sinc table

flags:
`

var InvalidArguments = errors.New("Invalid arguments")

type config struct {
	rate          int
	blockLength   int
	key           int
	seconds       float64
	volume        int
	panning       int
	interpolation ibxmsample.Interpolation
	fftSize       int
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("ibxmsample", pflag.ContinueOnError)
	flags.String("config", "", "configuration file (yaml, toml or json)")
	flags.Int("rate", 48000, "output sampling rate in Hz")
	flags.Int("block-length", 1024, "frames mixed per block")
	flags.Int("key", 49, "key to play, 1 to 120 (49 is C-4)")
	flags.Float64("seconds", 4, "maximum length to render")
	flags.Int("volume", 64, "voice volume, 0 to 64")
	flags.Int("panning", 128, "voice panning, 0 (left) to 255 (right)")
	flags.String("interpolation", "sinc", "nearest, linear or sinc")
	flags.Int("fft-size", 256, "transform size used by tables")
	return flags
}

/*
	Parse flags, then overlay IBXMSAMPLE_* environment variables and the
	optional configuration file. Flags given on the command line win.
*/
func loadConfig(args []string) (*config, []string, error) {
	flags := newFlagSet()
	flags.Usage = func() {}
	if e := flags.Parse(args); e != nil {
		return nil, nil, fmt.Errorf("%w: %v", InvalidArguments, e)
	}
	v := viper.New()
	if e := v.BindPFlags(flags); e != nil {
		return nil, nil, e
	}
	v.SetEnvPrefix("ibxmsample")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if e := v.ReadInConfig(); e != nil {
			return nil, nil, fmt.Errorf("reading config: %w", e)
		}
	}
	interpolation, e := ibxmsample.ParseInterpolation(v.GetString("interpolation"))
	if e != nil {
		return nil, nil, fmt.Errorf("%w: %q", e, v.GetString("interpolation"))
	}
	cfg := &config{
		rate:          v.GetInt("rate"),
		blockLength:   v.GetInt("block-length"),
		key:           v.GetInt("key"),
		seconds:       v.GetFloat64("seconds"),
		volume:        v.GetInt("volume"),
		panning:       v.GetInt("panning"),
		interpolation: interpolation,
		fftSize:       v.GetInt("fft-size"),
	}
	return cfg, flags.Args(), nil
}

func decodeFile(path string) (*ibxmsample.Sample, error) {
	f, e := os.Open(path)
	if e != nil {
		return nil, e
	}
	defer f.Close()
	sample, e := load.Decode(f)
	if e != nil {
		return nil, fmt.Errorf("%s: %w", path, e)
	}
	return sample, nil
}

func runInfo(w io.Writer, args []string) error {
	if len(args) != 1 {
		return InvalidArguments
	}
	sample, e := decodeFile(args[0])
	if e != nil {
		return e
	}
	fmt.Fprintf(w, "File: %s\n", args[0])
	fmt.Fprintf(w, "Looped: %v\n", sample.Looped())
	fmt.Fprintf(w, "Length: %d\n", sample.Len())
	return sample.DumpInfo(w, "")
}

func runRender(cfg *config, args []string) (int, error) {
	if len(args) != 2 {
		return 0, InvalidArguments
	}
	sample, e := decodeFile(args[0])
	if e != nil {
		return 0, e
	}
	renderer, e := ibxmsample.NewRenderer(cfg.rate, cfg.blockLength)
	if e != nil {
		return 0, e
	}
	renderer.SetInterpolation(cfg.interpolation)
	voice := ibxmsample.NewVoice(sample)
	voice.Trigger(cfg.key)
	voice.SetVolume(cfg.volume)
	voice.SetPanning(cfg.panning)

	out, e := os.Create(args[1])
	if e != nil {
		return 0, e
	}
	frames, e := renderer.Dump(out, int(cfg.seconds*float64(cfg.rate)), voice)
	if e != nil {
		out.Close()
		return frames, e
	}
	return frames, out.Close()
}

func runTables(w io.Writer, cfg *config) error {
	summary, e := analysis.Summarise(cfg.fftSize)
	if e != nil {
		return e
	}
	for _, s := range summary {
		fmt.Fprintf(w, "Table %d: DC gain %.4f, cutoff %.3f Nyquist\n", s.Table, s.DCGain, s.Cutoff)
	}
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("ibxmsample: ")

	cfg, args, e := loadConfig(os.Args[1:])
	if e == nil && len(args) == 0 {
		e = InvalidArguments
	}
	if e != nil {
		fmt.Fprint(os.Stderr, usage)
		fmt.Fprint(os.Stderr, newFlagSet().FlagUsages())
		log.Fatal(e)
	}

	switch args[0] {
	case "info":
		e = runInfo(os.Stdout, args[1:])
	case "render":
		s := time.Now()
		var frames int
		frames, e = runRender(cfg, args[1:])
		if e == nil {
			log.Printf("rendered %d frames at %d Hz (%s) in %v", frames, cfg.rate, cfg.interpolation, time.Since(s))
		}
	case "tables":
		e = runTables(os.Stdout, cfg)
	default:
		e = fmt.Errorf("%w: unknown command %q", InvalidArguments, args[0])
	}
	if e != nil {
		log.Fatal(e)
	}
}
