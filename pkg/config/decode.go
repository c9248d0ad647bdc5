package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/ugorji/go/codec"
)

// Decode decodes raw settings into cfg. Only the keys present in raw are set,
// so cfg can carry values from another source.
// Durations are accepted as Go duration strings ("90s") or as a number of seconds.
func Decode(raw map[string]any, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("wrong receiver for decode")
	}

	decoderConfig := &mapstructure.DecoderConfig{
		DecodeHook:       durationHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return nil
}

// LoadFile reads a JSON config file into cfg.
func LoadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h := &codec.JsonHandle{}
	h.MapType = reflect.TypeOf(map[string]any(nil))

	var raw map[string]any
	if err := codec.NewDecoder(f, h).Decode(&raw); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	return Decode(raw, cfg)
}

var durationType = reflect.TypeOf(time.Duration(0))

func durationHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if t != durationType || f == durationType {
		return data, nil
	}

	v := reflect.ValueOf(data)
	switch f.Kind() {
	case reflect.String:
		s := v.String()
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
		secs, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q", s)
		}
		return seconds(secs), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Duration(v.Int()) * time.Second, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return time.Duration(v.Uint()) * time.Second, nil
	case reflect.Float32, reflect.Float64:
		return seconds(v.Float()), nil
	}
	return data, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
