package markup

import "testing"

const sampleText = "\n\\s[1]CrossCode разрабатывался с учётом \\c[3]вызова для игрока\\c[0], как в " +
	"\\c[3]сражениях\\c[0], так и в \\c[3]головоломках\\c[0], и мы призываем всех игроков " +
	"попробовать игру на предустановленной сложности.\n\nОднако, если это делает игру слишком " +
	"сложной или даже непроходимой для вас, в меню \\c[3]настроек\\c[0] имеется " +
	"\\c[3]вкладка\\c[0] c детальными настройками сложности."

func TestLexRoundTrip(t *testing.T) {
	tokens := Lex(sampleText)
	if got := ToString(tokens); got != sampleText {
		t.Fatalf("round trip mismatch:\n got:  %q\n want: %q", got, sampleText)
	}
}

func TestLexTokenTypes(t *testing.T) {
	tokens := Lex(sampleText)
	if len(tokens) == 0 {
		t.Fatal("expected at least one token")
	}

	want := []TokenType{LiteralText, TypingSpeed, LiteralText, Color, LiteralText, Color}
	for i, wantType := range want {
		if i >= len(tokens) {
			t.Fatalf("not enough tokens: got %d, wanted at least %d", len(tokens), len(want))
		}
		if tokens[i].Type != wantType {
			t.Errorf("token %d: type = %v, want %v (data %q)", i, tokens[i].Type, wantType, tokens[i].Data)
		}
	}

	if tokens[1].Data != "1" {
		t.Errorf("typing speed arg = %q, want %q", tokens[1].Data, "1")
	}
	if tokens[3].Data != "3" {
		t.Errorf("first color arg = %q, want %q", tokens[3].Data, "3")
	}
}

func TestLexTrailingBackslash(t *testing.T) {
	tokens := Lex("hi\\")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %+v", len(tokens), tokens)
	}
	if tokens[1].Type != LiteralText || tokens[1].Data != "\\" {
		t.Errorf("trailing backslash token = %+v, want literal %q", tokens[1], "\\")
	}
}

func TestLexUnterminatedBracketFallsBackToLiteralEscape(t *testing.T) {
	tokens := Lex("\\c[3 no closing bracket")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %+v", len(tokens), tokens)
	}
	if tokens[0].Type != LiteralText || tokens[0].Data != "\\c" {
		t.Errorf("got %+v, want literal %q", tokens[0], "\\c")
	}
	if tokens[1].Type != LiteralText || tokens[1].Data != "[3 no closing bracket" {
		t.Errorf("got %+v, want the remainder as literal text", tokens[1])
	}
}

func TestColorHex(t *testing.T) {
	hex, ok := ColorHex("3")
	if !ok || hex != "#ffe430" {
		t.Errorf("ColorHex(3) = (%q, %v), want (#ffe430, true)", hex, ok)
	}
	if _, ok := ColorHex("not-a-number"); ok {
		t.Error("ColorHex should reject a non-numeric argument")
	}
}
