package environment

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeFor[time.Duration]()

// ParseEnvTags fills a struct from environment variables using struct tags.
//
//	type Config struct {
//		URL     string        `env:"DATABASE_URL" default:"postgres://localhost/db"`
//		Timeout time.Duration `env:"TIMEOUT" default:"5s"`
//		Levels  []string      `env:"LOG" separator:","`
//		Token   string        `env:"TOKEN" required:"true"`
//		DB      DBConfig      // untagged structs are filled under the same prefix
//		Cache   CacheConfig   `envPrefix:"CACHE"` // or under PREFIX_CACHE
//	}
func ParseEnvTags(prefix string, cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return errors.New("cfg must be a pointer to a struct")
	}
	return parseStruct(prefix, v.Elem())
}

func parseStruct(prefix string, v reflect.Value) error {
	t := v.Type()

	for i := range v.NumField() {
		field, sf := v.Field(i), t.Field(i)
		if !field.CanSet() {
			continue
		}

		key, tagged := sf.Tag.Lookup("env")
		if !tagged {
			if field.Kind() != reflect.Struct {
				continue
			}
			nested := prefix
			if p := sf.Tag.Get("envPrefix"); p != "" {
				nested = GetNamespaceEnvKey(prefix, p)
			}
			if err := parseStruct(nested, field); err != nil {
				return fmt.Errorf("%s: %w", sf.Name, err)
			}
			continue
		}

		name := GetNamespaceEnvKey(prefix, key)
		raw, ok := os.LookupEnv(name)
		if !ok || raw == "" {
			if sf.Tag.Get("required") == "true" {
				return fmt.Errorf("required environment variable %s is not set", name)
			}
			raw = sf.Tag.Get("default")
		}

		if err := setFieldValue(field, raw, sf.Tag.Get("separator")); err != nil {
			return fmt.Errorf("%s (%s): %w", sf.Name, name, err)
		}
	}

	return nil
}

// setFieldValue parses raw into field. An empty raw leaves the zero value.
func setFieldValue(field reflect.Value, raw, separator string) error {
	if raw == "" {
		return nil
	}

	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("cannot parse duration: %w", err)
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse int: %w", err)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse uint: %w", err)
		}
		field.SetUint(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("cannot parse bool: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type())
		}
		if separator == "" {
			separator = ","
		}
		var out []string
		for part := range strings.SplitSeq(raw, separator) {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		field.Set(reflect.ValueOf(out))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
