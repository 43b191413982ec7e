// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo generates the sitemap and robots.txt for the public site.
package seo

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL is a single URL entry.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap is the complete urlset document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapProduct carries the product fields the sitemap needs.
type SitemapProduct struct {
	ID        int64
	UpdatedAt time.Time
}

// SitemapBuilder assembles the sitemap for the catalog.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder rooted at siteURL.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: strings.TrimSuffix(siteURL, "/")}
}

// AddHomepage adds the landing page.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/",
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
}

// AddStaticPages adds the fixed public pages.
func (b *SitemapBuilder) AddStaticPages() {
	for _, path := range []string{"/catalog", "/additional-services", "/works", "/about", "/contact"} {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + path,
			ChangeFreq: ChangeFreqWeekly,
			Priority:   "0.8",
		})
	}
}

// AddProduct adds one product page.
func (b *SitemapBuilder) AddProduct(p SitemapProduct) {
	url := SitemapURL{
		Loc:        fmt.Sprintf("%s/catalog/%d", b.siteURL, p.ID),
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.9",
	}
	if !p.UpdatedAt.IsZero() {
		url.LastMod = p.UpdatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddProducts adds multiple product pages.
func (b *SitemapBuilder) AddProducts(products []SitemapProduct) {
	for _, p := range products {
		b.AddProduct(p)
	}
}

// Build returns the XML document with header.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	out, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling sitemap: %w", err)
	}

	return append([]byte(xml.Header), out...), nil
}
