package benchmark

import (
	"fmt"
	"strings"
)

// Deterministic string generators using simple hash functions
func generateName(i int) string {
	firstNames := []string{"Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Henry", "Ivy", "Jack"}
	lastNames := []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	return firstNames[i%len(firstNames)] + " " + lastNames[(i*7)%len(lastNames)]
}

func generateTheme(i int) string {
	themes := []string{"light", "dark", "system", "custom"}
	return themes[i%len(themes)]
}

// GenerateDocument creates an editor-sized document: a settings block and
// a list of count profiles, each with nested objects and arrays.
func GenerateDocument(count int) []byte {
	var sb strings.Builder
	sb.Grow(count*220 + 128)

	sb.WriteString(`{"name":"Crimson Voyager","version":"1.0.0","settings":{"theme":"dark","notifications":true,"retryCount":3},"profiles":[`)
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"id":%d,"name":"%s","active":%t,"score":%.2f,"tags":["t%d","t%d"],"settings":{"theme":"%s","fontSize":%d,"beta":null}}`,
			i,
			generateName(i),
			i%3 != 0,
			float64(50+(i%50))+float64(i%100)/100.0,
			i%7, i%11,
			generateTheme(i),
			12+(i%8),
		)
	}
	sb.WriteString(`]}`)
	return []byte(sb.String())
}

// DataSizeInfo holds information about generated data sizes
type DataSizeInfo struct {
	Bytes       int
	KB          float64
	Description string
}

// GetDataSizeInfo returns size information for the given data
func GetDataSizeInfo(data []byte) DataSizeInfo {
	kb := float64(len(data)) / 1024
	return DataSizeInfo{
		Bytes:       len(data),
		KB:          kb,
		Description: fmt.Sprintf("%.2f KB", kb),
	}
}
