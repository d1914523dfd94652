package formjson_test

import (
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tomasbasham/formjson"
)

// Comparer for the Value type, which keeps its fields unexported.
var ValueComparer = cmp.Comparer(func(x, y formjson.Value) bool {
	return cmp.Equal(x.Interface(), y.Interface())
})

const artistPage = `<!DOCTYPE html>
<html>
<head><title>New Artist</title></head>
<body>
  <form class="form" method="post" action="/artists/create">
    <input type="text" name="name" value="Guns N Petals">
    <input type="text" name="city" value="San Francisco">
    <select name="state">
      <option value="CA" selected>CA</option>
      <option value="NY">NY</option>
    </select>
    <input type="tel" name="phone" value="326-123-5000">
    <select name="genres" multiple>
      <option value="Rock n Roll" selected>Rock n Roll</option>
      <option value="Jazz">Jazz</option>
      <option value="Blues" selected>Blues</option>
    </select>
    <input type="checkbox" name="seeking_venue" value="y">
    <textarea name="seeking_description">Looking for shows</textarea>
    <input type="submit" value="Create Artist">
  </form>
</body>
</html>`

type Artist struct {
	Name         string   `form:"name"`
	City         string   `form:"city"`
	State        string   `form:"state"`
	Phone        string   `form:"phone"`
	Genres       []string `form:"genres"`
	SeekingVenue bool     `form:"seeking_venue"`
	SeekingDesc  string   `form:"seeking_description"`
	Internal     string   `form:"-"`
	Ignored      string   `form:",ignore"`
	FacebookLink *string  `form:"facebook_link"`
	StartTime    ShowTime `form:"start_time"`
}

type ShowTime time.Time

func (s *ShowTime) UnmarshalForm(b string) error {
	t, err := time.Parse("2006-01-02 15:04", b)
	if err != nil {
		return err
	}
	*s = ShowTime(t)
	return nil
}

// Comparer for ShowTime type.
var ShowTimeComparer = cmp.Comparer(func(x, y ShowTime) bool {
	return time.Time(x).Equal(time.Time(y))
})

func genresControl() formjson.SelectControl {
	return formjson.SelectControl{
		Name:     "genres",
		Multiple: true,
		Options: []formjson.Option{
			{Value: "rock", Selected: true},
			{Value: "jazz", Selected: false},
			{Value: "pop", Selected: true},
		},
	}
}
