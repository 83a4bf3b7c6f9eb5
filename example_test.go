package jsonedit_test

import (
	"context"
	"fmt"

	"github.com/dhawalhost/jsonedit"
)

func ExampleResolve() {
	doc := jsonedit.MustParse(`{"settings":{"theme":"dark"},"tags":["a","b"]}`)

	theme, _ := jsonedit.Resolve(doc, "root.settings.theme")
	tag, _ := jsonedit.Resolve(doc, "root.tags.1")
	fmt.Println(theme.Str, tag.Str)
	// Output: dark b
}

func ExampleRenameKey() {
	doc := jsonedit.MustParse(`{"a":1,"b":2}`)

	next, err := jsonedit.RenameKey(doc, "root.a", "c")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(next)
	// Output: {"c":1,"b":2}
}

func ExampleReorder() {
	doc := jsonedit.MustParse(`[1,2,3]`)

	next, _ := jsonedit.Reorder(doc, "root.0", "root.2")
	fmt.Println(next)
	// Output: [2,3,1]
}

func ExampleSerialize() {
	doc := jsonedit.MustParse(`{"name":"Crimson Voyager","features":["json-editor"]}`)

	fmt.Println(string(jsonedit.Serialize(doc, "")))
	// Output:
	// {
	//   "name": "Crimson Voyager",
	//   "features": [
	//     "json-editor"
	//   ]
	// }
}

func ExampleSession() {
	s, _ := jsonedit.NewSessionFromText([]byte(`{"x":1,"y":2}`), nil)
	ctx := context.Background()

	s.Click("root.x", 0)
	_ = s.Copy(ctx)
	s.Click(jsonedit.RootID, 0)
	_ = s.Paste(ctx)
	_ = s.Paste(ctx)
	fmt.Println(s.Document())

	s.Undo()
	fmt.Println(s.Document())
	// Output:
	// {"x":1,"y":2,"x_copy1":1,"x_copy2":1}
	// {"x":1,"y":2,"x_copy1":1}
}
