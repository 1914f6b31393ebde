// Package etree renders journeys as XML documents.
package etree

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/wikiloop"
)

// EncodeJourney writes r to w as an indented XML document:
//
//	<journey status="succeeded" url="..." pages="2">
//	  <message>...</message>
//	  <page url="...">
//	    <title>...</title>
//	    <image>...</image>
//	    <text>...</text>
//	  </page>
//	</journey>
//
// The message element is present only for failed journeys.
func EncodeJourney(w io.Writer, r *wikiloop.Result) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("journey")
	root.CreateAttr("status", string(r.Status))
	root.CreateAttr("url", r.URL)
	root.CreateAttr("pages", strconv.Itoa(len(r.Journey)))

	if msg := r.Message(); msg != "" {
		root.CreateElement("message").SetText(msg)
	}

	for _, p := range r.Journey {
		page := root.CreateElement("page")
		page.CreateAttr("url", p.URL)
		page.CreateElement("title").SetText(p.Title)
		page.CreateElement("image").SetText(p.Image)
		page.CreateElement("text").SetText(p.Text)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
