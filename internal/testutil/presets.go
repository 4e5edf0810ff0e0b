package testutil

// SimpleDoc returns a small two-paragraph document.
func SimpleDoc() string {
	return NewDoc().
		P("hello world").
		P("second paragraph").
		Build()
}

// FormattedDoc returns a document exercising the common mark and block
// vocabulary: headings, inline marks, links, lists, and a quote.
func FormattedDoc() string {
	return NewDoc().
		H(1, "Title").
		P("plain "+B("bold")+" and "+I("italic")+" text").
		P("see "+A("https://example.com", "the docs")+" for more").
		List(false, "first", "second "+Code("inline")).
		Quote("a wise remark").
		Build()
}

// OfficePasteDoc returns markup with the word-processor noise the paste
// scrubber removes: conditional comments, namespaced tags, and mso classes.
func OfficePasteDoc() string {
	return `<html xmlns:o="urn:schemas-microsoft-com:office:office">` +
		`<!--[if gte mso 9]><xml><o:OfficeDocumentSettings/></xml><![endif]-->` +
		`<p class="MsoNormal" style="mso-margin-top-alt:auto">pasted ` +
		`<b>content</b></p><o:p></o:p></html>`
}

// JunkyDoc returns markup with the artifacts normalization cleans up:
// duplicate adjacent inlines, empty wrappers, attribute-free spans, and
// zero-width characters.
func JunkyDoc() string {
	return `<p><b>ab</b><b>cd</b> <i></i><span>plain</span>` +
		"\u200b" + `tail</p>`
}
