package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr        string
	SQLitePath        string
	DatabaseURL       string
	FeedToken         string
	DefaultHourlyRate float64
	WeekStart         time.Weekday
	Location          *time.Location
	TelegramToken     string
	TelegramChats     []int64
	ReminderCron      string
	CORSOrigins       []string
	Workers           int
	QueueSize         int
}

var defaults = map[string]string{
	"LISTEN_ADDR":         ":3000",
	"SQLITE_PATH":         "shifts.db",
	"DEFAULT_HOURLY_RATE": "20",
	"WEEK_START":          "sunday",
	"TIMEZONE":            "UTC",
	"WORKERS":             "4",
	"QUEUE_SIZE":          "32",
}

// LoadConfig reads .env, then the YAML file named by CONFIG_FILE, then the
// environment. Later sources win. YAML keys use the environment variable names.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	file := map[string]string{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		var err error
		if file, err = readYAML(path); err != nil {
			return nil, err
		}
	}
	get := func(key string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		if v, ok := file[key]; ok {
			return v
		}
		return defaults[key]
	}
	return parse(get)
}

func readYAML(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch vv := v.(type) {
		case nil:
		case []any:
			parts := make([]string, len(vv))
			for i, p := range vv {
				parts[i] = fmt.Sprint(p)
			}
			out[strings.ToUpper(k)] = strings.Join(parts, ",")
		default:
			out[strings.ToUpper(k)] = fmt.Sprint(vv)
		}
	}
	return out, nil
}

func parse(get func(string) string) (*Config, error) {
	cfg := &Config{
		ListenAddr:    get("LISTEN_ADDR"),
		SQLitePath:    get("SQLITE_PATH"),
		DatabaseURL:   get("DATABASE_URL"),
		FeedToken:     get("ICS_FEED_TOKEN"),
		TelegramToken: get("TELEGRAM_TOKEN"),
		ReminderCron:  get("REMINDER_CRON"),
		CORSOrigins:   splitList(get("CORS_ORIGINS")),
	}

	var err error
	rate := get("DEFAULT_HOURLY_RATE")
	if cfg.DefaultHourlyRate, err = strconv.ParseFloat(rate, 64); err != nil || cfg.DefaultHourlyRate < 0 {
		return nil, ErrInvalidValue{Key: "DEFAULT_HOURLY_RATE", Value: rate}
	}
	if cfg.WeekStart, err = parseWeekday(get("WEEK_START")); err != nil {
		return nil, err
	}
	tz := get("TIMEZONE")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return nil, ErrInvalidValue{Key: "TIMEZONE", Value: tz}
	}
	if cfg.Workers, err = positiveInt("WORKERS", get("WORKERS")); err != nil {
		return nil, err
	}
	if cfg.QueueSize, err = positiveInt("QUEUE_SIZE", get("QUEUE_SIZE")); err != nil {
		return nil, err
	}
	for _, s := range splitList(get("TELEGRAM_CHATS")) {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, ErrInvalidValue{Key: "TELEGRAM_CHATS", Value: s}
		}
		cfg.TelegramChats = append(cfg.TelegramChats, id)
	}
	if cfg.ReminderCron != "" && cfg.TelegramToken == "" {
		return nil, ErrInvalidValue{Key: "REMINDER_CRON", Value: cfg.ReminderCron + " (needs TELEGRAM_TOKEN)"}
	}
	return cfg, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(s) {
	case "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	}
	return 0, ErrInvalidValue{Key: "WEEK_START", Value: s}
}

func positiveInt(key, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, ErrInvalidValue{Key: key, Value: s}
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type ErrInvalidValue struct {
	Key   string
	Value string
}

func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid value for %s: %q", e.Key, e.Value)
}
