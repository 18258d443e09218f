package marketsim

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("symbol", "MSFT")
		w.Append("day", 3)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"symbol":"MSFT","day":3}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed object", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("side", "buy")
		w.Embed(json.RawMessage(`{"currency":"USD","amount":"10"}`))
		w.Append("day", 2)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"side":"buy","currency":"USD","amount":"10","day":2}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("day", 0) // assess that a zero value is actually added.
		w.Optional("tag", "")
		w.Optional("steps", 0)
		w.Optional("symbol", "AAPL")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"day":0,"symbol":"AAPL"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed money", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("symbol", "AAPL")
		w.EmbedFrom(USD(500))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"symbol":"AAPL","currency":"USD","amount":"500"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
