// Package core contains the main struct of the software.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"time"

	"github.com/alecthomas/kong"

	"github.com/bluenviron/mediaprobe/internal/api"
	"github.com/bluenviron/mediaprobe/internal/conf"
	"github.com/bluenviron/mediaprobe/internal/confwatcher"
	"github.com/bluenviron/mediaprobe/internal/extractor"
	"github.com/bluenviron/mediaprobe/internal/logger"
	"github.com/bluenviron/mediaprobe/internal/probe"
)

var version = "v0.0.0"

type cliOptions struct {
	Version     bool   `help:"print version"`
	Conf        string `help:"path to a config file"`
	ContentType string `help:"content type hint, used when probing a file"`
	Path        string `arg:"" optional:"" help:"file to probe; when omitted, the HTTP API server is started"`
}

// Core is an instance of mediaprobe.
type Core struct {
	ctx         context.Context
	ctxCancel   func()
	confPath    string
	conf        *conf.Conf
	oneShotPath string
	logger      *logger.Logger
	factory     *extractor.Factory
	prober      *probe.Prober
	api         *api.API
	confWatcher *confwatcher.ConfWatcher

	done chan struct{}
}

// New allocates a Core.
func New(args []string) (*Core, bool) {
	var cli cliOptions
	parser, err := kong.New(&cli,
		kong.Description("mediaprobe "+version),
		kong.UsageOnError())
	if err != nil {
		panic(err)
	}

	_, err = parser.Parse(args)
	parser.FatalIfErrorf(err)

	if cli.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	ctx, ctxCancel := context.WithCancel(context.Background())

	p := &Core{
		ctx:         ctx,
		ctxCancel:   ctxCancel,
		oneShotPath: cli.Path,
		done:        make(chan struct{}),
	}

	p.conf, p.confPath, err = conf.Load(cli.Conf)
	if err != nil {
		fmt.Printf("ERR: %s\n", err)
		return nil, false
	}

	err = p.createResources(true)
	if err != nil {
		if p.logger != nil {
			p.Log(logger.Error, "%s", err)
		} else {
			fmt.Printf("ERR: %s\n", err)
		}
		p.closeResources(nil)
		return nil, false
	}

	if p.oneShotPath != "" {
		err = p.probeFile(p.oneShotPath, cli.ContentType)
		p.closeResources(nil)
		close(p.done)
		if err != nil {
			fmt.Printf("ERR: %s\n", err)
			return nil, false
		}
		return p, true
	}

	go p.run()

	return p, true
}

// Close closes Core and waits for all goroutines to return.
func (p *Core) Close() {
	p.ctxCancel()
	<-p.done
}

// Wait waits for the Core to exit.
func (p *Core) Wait() {
	<-p.done
}

// Log is the main logging function.
func (p *Core) Log(level logger.Level, format string, args ...interface{}) {
	p.logger.Log(level, format, args...)
}

func (p *Core) run() {
	defer close(p.done)

	confChanged := func() chan struct{} {
		if p.confWatcher != nil {
			return p.confWatcher.Watch()
		}
		return make(chan struct{})
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

outer:
	for {
		select {
		case <-confChanged:
			p.Log(logger.Info, "reloading configuration (file changed)")

			newConf, _, err := conf.Load(p.confPath)
			if err != nil {
				p.Log(logger.Error, "%s", err)
				break outer
			}

			err = p.reloadConf(newConf)
			if err != nil {
				p.Log(logger.Error, "%s", err)
				break outer
			}

		case <-interrupt:
			p.Log(logger.Info, "shutting down gracefully")
			break outer

		case <-p.ctx.Done():
			break outer
		}
	}

	p.ctxCancel()

	p.closeResources(nil)
}

func (p *Core) createResources(initial bool) error {
	var err error

	if p.logger == nil {
		p.logger = &logger.Logger{
			Level:        logger.Level(p.conf.LogLevel),
			Destinations: p.conf.LogDestinations,
			File:         p.conf.LogFile,
		}
		err = p.logger.Initialize()
		if err != nil {
			return err
		}
	}

	if initial {
		p.Log(logger.Info, "mediaprobe %s", version)
		if p.confPath == "" {
			p.Log(logger.Warn, "configuration file not found, using defaults")
		}
	}

	if p.factory == nil {
		p.factory = &extractor.Factory{
			SubtitleTranscoding: p.conf.SubtitleTranscoding,
		}
		p.factory.Initialize()
	}

	if p.prober == nil {
		p.prober = &probe.Prober{
			Factory:       p.factory,
			MaxHeaderSize: int(p.conf.MaxHeaderSize),
		}
		p.prober.Initialize()
	}

	if p.conf.API && p.oneShotPath == "" {
		if p.api == nil {
			p.api = &api.API{
				Version: version,
				Started: time.Now(),
				Address: p.conf.APIAddress,
				Prober:  p.prober,
				Parent:  p,
			}
			err = p.api.Initialize()
			if err != nil {
				return err
			}
		}
	}

	if p.confPath != "" && p.oneShotPath == "" {
		if p.confWatcher == nil {
			p.confWatcher = &confwatcher.ConfWatcher{FilePath: p.confPath}
			err = p.confWatcher.Initialize()
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *Core) closeResources(newConf *conf.Conf) {
	closeLogger := newConf == nil ||
		newConf.LogLevel != p.conf.LogLevel ||
		!reflect.DeepEqual(newConf.LogDestinations, p.conf.LogDestinations) ||
		newConf.LogFile != p.conf.LogFile

	closeFactory := newConf == nil ||
		newConf.SubtitleTranscoding != p.conf.SubtitleTranscoding

	closeProber := closeFactory ||
		newConf.MaxHeaderSize != p.conf.MaxHeaderSize

	closeAPI := newConf == nil ||
		newConf.API != p.conf.API ||
		newConf.APIAddress != p.conf.APIAddress ||
		closeProber

	if closeAPI && p.api != nil {
		p.api.Close()
		p.api = nil
	}

	if closeProber {
		p.prober = nil
	}

	if closeFactory {
		p.factory = nil
	}

	if newConf == nil && p.confWatcher != nil {
		p.confWatcher.Close()
		p.confWatcher = nil
	}

	if closeLogger && p.logger != nil {
		p.logger.Close()
		p.logger = nil
	}
}

func (p *Core) reloadConf(newConf *conf.Conf) error {
	p.closeResources(newConf)
	p.conf = newConf
	return p.createResources(false)
}

// probeFile probes a local file and prints the result to stdout.
func (p *Core) probeFile(fpath string, contentType string) error {
	f, err := os.Open(fpath)
	if err != nil {
		return err
	}
	defer f.Close()

	var headers map[string][]string
	if contentType != "" {
		headers = map[string][]string{"Content-Type": {contentType}}
	}

	info, err := p.prober.Probe(f, fpath, headers)
	if err != nil {
		return err
	}

	enc, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(enc))
	return nil
}
