package token

// Keyword enumerates Pine's reserved words. The set matches the spec's
// keyword alphabet exactly: fun begin end let set if then else for while do
// return int float string bool object new.
type Keyword int

const (
	Fun Keyword = iota
	Begin
	End
	Let
	Set
	If
	Then
	Else
	For
	While
	Do
	Return
	Int
	Float_
	String_
	Bool
	Object
	New
)

var keywordText = map[Keyword]string{
	Fun: "fun", Begin: "begin", End: "end", Let: "let", Set: "set",
	If: "if", Then: "then", Else: "else", For: "for", While: "while",
	Do: "do", Return: "return", Int: "int", Float_: "float", String_: "string",
	Bool: "bool", Object: "object", New: "new",
}

var textKeyword = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordText))
	for k, v := range keywordText {
		m[v] = k
	}
	return m
}()

func (k Keyword) String() string { return keywordText[k] }

// LookupKeyword returns the Keyword matching ident and true, or the zero
// value and false if ident is not a reserved word.
func LookupKeyword(ident string) (Keyword, bool) {
	k, ok := textKeyword[ident]
	return k, ok
}
