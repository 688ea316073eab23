package tokenize

import "regexp"

// tagHeaderPattern matches the `+#<NAME>#+` marker. NAME must start with a
// letter or underscore and continue with letters, digits, underscore, or
// dot (§4.1, §6 "Tag syntax (text)").
var tagHeaderPattern = regexp.MustCompile(`\+#([_A-Za-z][A-Za-z_0-9.]*)#\+`)

// tagLinkPattern matches one `[URL]` optionally followed by `<CAPTION>`,
// anchored to the start of the remaining input so link groups can be
// chained by advancing the scan position.
var tagLinkPattern = regexp.MustCompile(`^\[([^\]]*)\](?:<([^>]*)>)?`)

// TagTokenizer recognizes `+#NAME#+` markers followed by zero or more
// `[url]<caption>` link groups and emits one Token{Type: TypeTag} per
// match, with Data carrying the []TagLink payload extracted from the same
// match (§4.1 Tag tokenizer).
//
// It additionally supports the tag-collection protocol of §4.2: a writer
// may Subscribe for the duration of a single Tokenize call to observe
// every Tag token as it is produced, without retokenizing the input a
// second time. The subscription list is not safe for concurrent use
// (§5 Shared resources) and must only be touched from the writer's
// add/update call.
type TagTokenizer struct {
	listener func(Token)
}

// NewTagTokenizer constructs a TagTokenizer.
func NewTagTokenizer() *TagTokenizer {
	return &TagTokenizer{}
}

// Subscribe registers fn to be called, in tokenization order, for every Tag
// token produced by Tokenize calls until the returned unsubscribe function
// is called, which clears the subscription again. Only one subscriber is
// supported at a time, matching the protocol's single-writer, single-call
// usage (§5).
func (tz *TagTokenizer) Subscribe(fn func(Token)) (unsubscribe func()) {
	tz.listener = fn
	return func() {
		tz.listener = nil
	}
}

func (tz *TagTokenizer) notify(tok Token) {
	if tz.listener != nil {
		tz.listener(tok)
	}
}

func (tz *TagTokenizer) Tokenize(src []byte) (Stream, error) {
	var tokens []Token
	headers := tagHeaderPattern.FindAllSubmatchIndex(src, -1)
	for _, h := range headers {
		matchStart, nameEnd := h[0], h[1]
		nameStart, nameStop := h[2], h[3]
		name := string(src[nameStart:nameStop])

		pos := nameEnd
		var links []TagLink
		for pos < len(src) {
			lm := tagLinkPattern.FindSubmatchIndex(src[pos:])
			if lm == nil {
				break
			}
			url := string(src[pos+lm[2] : pos+lm[3]])
			caption := ""
			if lm[4] >= 0 {
				caption = string(src[pos+lm[4] : pos+lm[5]])
			}
			links = append(links, TagLink{URL: url, Caption: caption})
			pos += lm[1]
		}

		var data any
		if len(links) > 0 {
			data = links
		}
		tok := Token{
			Text:     name,
			Type:     TypeTag,
			Position: matchStart,
			Length:   pos - matchStart,
			Line:     NoPos,
			Column:   NoPos,
			Data:     data,
		}
		tokens = append(tokens, tok)
		tz.notify(tok)
	}
	return NewSliceStream(tokens), nil
}
