// Package conf contains the struct that holds the configuration of the software.
package conf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bluenviron/mediaprobe/internal/conf/env"
	"github.com/bluenviron/mediaprobe/internal/conf/yamlwrapper"
	"github.com/bluenviron/mediaprobe/internal/logger"
)

func firstThatExists(paths []string) string {
	for _, pa := range paths {
		_, err := os.Stat(pa)
		if err == nil {
			return pa
		}
	}
	return ""
}

// DefaultConfPaths is the list of configuration file paths tried when
// none is given explicitly.
var DefaultConfPaths = []string{
	"mediaprobe.yml",
	"/usr/local/etc/mediaprobe.yml",
	"/etc/mediaprobe/mediaprobe.yml",
}

// Conf is a configuration.
type Conf struct {
	// General
	LogLevel        LogLevel        `json:"logLevel"`
	LogDestinations LogDestinations `json:"logDestinations"`
	LogFile         string          `json:"logFile"`

	// Probing
	SubtitleTranscoding bool       `json:"subtitleTranscoding"`
	MaxHeaderSize       StringSize `json:"maxHeaderSize"`

	// HTTP API
	API        bool   `json:"api"`
	APIAddress string `json:"apiAddress"`
}

func (conf *Conf) setDefaults() {
	// General
	conf.LogLevel = LogLevel(logger.Info)
	conf.LogDestinations = LogDestinations{logger.DestinationStdout}
	conf.LogFile = "mediaprobe.log"

	// Probing
	conf.MaxHeaderSize = 64 * 1024

	// HTTP API
	conf.API = true
	conf.APIAddress = ":9997"
}

// Load loads a Conf.
func Load(fpath string) (*Conf, string, error) {
	conf := &Conf{}

	fpath, err := conf.loadFromFile(fpath)
	if err != nil {
		return nil, "", err
	}

	err = env.Load("MEDIAPROBE", conf)
	if err != nil {
		return nil, "", err
	}

	err = conf.Validate()
	if err != nil {
		return nil, "", err
	}

	return conf, fpath, nil
}

func (conf *Conf) loadFromFile(fpath string) (string, error) {
	if fpath == "" {
		fpath = firstThatExists(DefaultConfPaths)

		// when the configuration file is not explicitly set,
		// it is optional.
		if fpath == "" {
			conf.setDefaults()
			return "", nil
		}
	}

	byts, err := os.ReadFile(fpath)
	if err != nil {
		return "", err
	}

	err = yamlwrapper.Unmarshal(byts, conf)
	if err != nil {
		return "", err
	}

	return fpath, nil
}

// UnmarshalJSON implements json.Unmarshaler. Defaults are applied
// before decoding so that missing parameters keep their default value.
func (conf *Conf) UnmarshalJSON(b []byte) error {
	conf.setDefaults()

	type alias Conf
	d := json.NewDecoder(bytes.NewReader(b))
	d.DisallowUnknownFields()
	return d.Decode((*alias)(conf))
}

// Validate checks the configuration for errors.
func (conf *Conf) Validate() error {
	if conf.MaxHeaderSize == 0 {
		return fmt.Errorf("'maxHeaderSize' must be greater than zero")
	}

	if conf.LogDestinations.contains(logger.DestinationFile) && conf.LogFile == "" {
		return fmt.Errorf("'logFile' must be set when logging to a file")
	}

	if len(conf.LogDestinations) == 0 {
		return fmt.Errorf("at least one log destination is required")
	}

	return nil
}

// Clone clones the configuration.
func (conf Conf) Clone() *Conf {
	enc, err := json.Marshal(conf)
	if err != nil {
		panic(err)
	}

	var dest Conf
	err = json.Unmarshal(enc, &dest)
	if err != nil {
		panic(err)
	}

	return &dest
}
