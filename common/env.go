package common

import (
	"os"
	"strconv"
	"strings"
)

func GetEnvString(key string) string {
	return os.Getenv(key)
}

func GetEnvInt(key string) int {
	val, _ := strconv.Atoi(os.Getenv(key))
	return val
}

func GetEnvInt64(key string) int64 {
	val, _ := strconv.ParseInt(os.Getenv(key), 10, 64)
	return val
}

func GetEnvFloat64(key string) float64 {
	val, _ := strconv.ParseFloat(os.Getenv(key), 64)
	return val
}

func GetEnvArray(key string) []string {
	content := os.Getenv(key)
	if content == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(content, ";") {
		item = strings.Trim(item, " ")
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
