package model

import "encoding/xml"

// Feed is the Atom document served by the activity stream.
// Only feed/entry elements are read.
type Feed struct {
	XMLName xml.Name        `xml:"feed" json:"-" yaml:"-"`
	Entries []ActivityEntry `xml:"entry" json:"entries" yaml:"entries"`
}

// ActivityEntry is one action in a user's timeline.
// Title holds HTML markup once the XML layer has unescaped it.
type ActivityEntry struct {
	Title   string `xml:"title" json:"title" yaml:"title"`
	Updated string `xml:"updated" json:"updated" yaml:"updated"`
}
