package benchmark

import (
	"encoding/json"
	"testing"

	"github.com/itchyny/gojq"
	"github.com/tidwall/gjson"

	"github.com/dhawalhost/jsonedit"
)

var (
	smallText []byte
	largeText []byte
	smallDoc  jsonedit.Value
	largeDoc  jsonedit.Value

	largeParsed any
	gojqLookup  *gojq.Code

	resultSink any
)

const lookupID = jsonedit.NodeID("root.profiles.500.settings.theme")

func init() {
	smallText = GenerateDocument(10)
	largeText = GenerateDocument(1000)
	smallDoc = jsonedit.MustParse(string(smallText))
	largeDoc = jsonedit.MustParse(string(largeText))

	if err := json.Unmarshal(largeText, &largeParsed); err != nil {
		panic(err)
	}
	query, err := gojq.Parse(".profiles[500].settings.theme")
	if err != nil {
		panic(err)
	}
	gojqLookup, err = gojq.Compile(query)
	if err != nil {
		panic(err)
	}
}

// Lookup: structured resolve vs. raw-text path query vs. jq
func BenchmarkLookup_Resolve(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v, err := jsonedit.Resolve(largeDoc, lookupID)
		if err != nil {
			b.Fatal(err)
		}
		resultSink = v
	}
}

func BenchmarkLookup_GJSON(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		resultSink = gjson.GetBytes(largeText, "profiles.500.settings.theme")
	}
}

func BenchmarkLookup_Gojq(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		iter := gojqLookup.Run(largeParsed)
		v, _ := iter.Next()
		resultSink = v
	}
}

func BenchmarkParseText(b *testing.B) {
	b.SetBytes(int64(GetDataSizeInfo(largeText).Bytes))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v, err := jsonedit.ParseText(largeText)
		if err != nil {
			b.Fatal(err)
		}
		resultSink = v
	}
}

func BenchmarkSerialize(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		resultSink = jsonedit.Serialize(largeDoc, "")
	}
}

// Mutations copy the whole document, so their cost tracks document size.
func BenchmarkSetValue_Small(b *testing.B) {
	id := jsonedit.NodeID("root.settings.theme")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v, err := jsonedit.SetValue(smallDoc, id, jsonedit.String("light"))
		if err != nil {
			b.Fatal(err)
		}
		resultSink = v
	}
}

func BenchmarkSetValue_Large(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v, err := jsonedit.SetValue(largeDoc, lookupID, jsonedit.String("light"))
		if err != nil {
			b.Fatal(err)
		}
		resultSink = v
	}
}

func BenchmarkReorder_Large(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v, err := jsonedit.Reorder(largeDoc, "root.profiles.0", "root.profiles.999")
		if err != nil {
			b.Fatal(err)
		}
		resultSink = v
	}
}

func BenchmarkCopyPaste_Large(b *testing.B) {
	flat := jsonedit.FlattenDocument(largeDoc)
	selected := []jsonedit.NodeID{"root.profiles.1", "root.profiles.2"}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		text, err := jsonedit.CopyPayload(largeDoc, selected, flat)
		if err != nil {
			b.Fatal(err)
		}
		v, err := jsonedit.Paste(largeDoc, jsonedit.PasteRequest{Target: "root.profiles.10", Text: text})
		if err != nil {
			b.Fatal(err)
		}
		resultSink = v
	}
}

func BenchmarkHistory_RecordUndo(b *testing.B) {
	h := jsonedit.NewHistory(100)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h.Record(smallDoc)
		v, _ := h.Undo(smallDoc)
		resultSink = v
	}
}
