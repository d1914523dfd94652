package formjson_test

import (
	"context"
	"fmt"
	"os"

	"github.com/tomasbasham/formjson"
)

func ExampleSerialize() {
	form := formjson.Serialize([]formjson.Control{
		formjson.TextControl{Name: "title", Value: "Inception"},
		formjson.SelectControl{
			Name:     "genres",
			Multiple: true,
			Options: []formjson.Option{
				{Value: "rock", Selected: true},
				{Value: "jazz"},
				{Value: "pop", Selected: true},
			},
		},
	})

	if err := formjson.NewEncoder(os.Stdout, formjson.FormatJSON).Encode(form); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	// Output:
	// {"title":"Inception","genres":["rock","pop"]}
}

func ExampleBind() {
	doc, err := formjson.ParseString(`
		<form class="form">
			<input name="name" value="The Musical Hop">
			<select name="genres" multiple>
				<option selected>Jazz</option>
				<option>Reggae</option>
				<option selected>Swing</option>
			</select>
		</form>`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	h, err := formjson.Bind(context.Background(), formjson.StaticDocument(doc), formjson.DefaultClass,
		formjson.WithEncoder(formjson.NewEncoder(os.Stdout, formjson.FormatURLEncoded)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	ev := &formjson.SubmitEvent{}
	if _, err := h.HandleSubmit(context.Background(), ev); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(ev.DefaultPrevented())
	// Output:
	// name=The+Musical+Hop&genres=Jazz&genres=Swing
	// true
}

func ExampleUnmarshal() {
	type Venue struct {
		Name   string   `form:"name"`
		Genres []string `form:"genres"`
		Talent bool     `form:"seeking_talent"`
	}

	var venue Venue
	if err := formjson.Unmarshal([]byte("name=The+Musical+Hop&genres=Jazz&genres=Swing&seeking_talent=y"), &venue); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("%#v\n", venue)
	// Output:
	// formjson_test.Venue{Name:"The Musical Hop", Genres:[]string{"Jazz", "Swing"}, Talent:true}
}
