package auth

import "testing"

func TestBasicHeaderRFC7617Example(t *testing.T) {
	got := BasicHeader("aladdin", "opensesame")
	want := "Basic YWxhZGRpbjpvcGVuc2VzYW1l"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBearerHeader(t *testing.T) {
	got := BearerHeader("xyz")
	if got != "Bearer xyz" {
		t.Fatalf("got %q", got)
	}
}
