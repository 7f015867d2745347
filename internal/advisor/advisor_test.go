package advisor

import "testing"

func TestAsk(t *testing.T) {
	for _, q := range []string{"", "   ", "\n\t"} {
		if reply, ok := Ask(q); ok || reply != "" {
			t.Errorf("Ask(%q) = %q, %v; want no reply", q, reply, ok)
		}
	}

	for _, q := range []string{"How do I raise a seed round?", "x"} {
		reply, ok := Ask(q)
		if !ok {
			t.Fatalf("Ask(%q) gave no reply", q)
		}
		if reply != Reply {
			t.Errorf("Ask(%q) = %q, want %q", q, reply, Reply)
		}
	}
}

func TestBoost(t *testing.T) {
	if Boost() == "" {
		t.Fatal("Boost() returned empty message")
	}
}
