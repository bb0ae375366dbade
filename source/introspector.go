// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/k3a/html2text"
)

const (
	// DefaultURLTemplate is the template of the URL a module's source is
	// fetched from. "{version}" is replaced by the requested version and
	// "{module}" by the module path with dots replaced by slashes.
	DefaultURLTemplate = "https://raw.githubusercontent.com/django/django/{version}/{module}.py"

	// DefaultFallbackTemplate is the template of the URL tried when the
	// module is not found at the requested version. It targets the default
	// branch.
	DefaultFallbackTemplate = "https://raw.githubusercontent.com/django/django/main/{module}.py"

	// maxSourceBytes is the upper bound on the size of a fetched source
	// file (10 MB).
	maxSourceBytes = 10 << 20

	userAgent = "go-intersphinx"
)

// errNotFound is returned by fetch when the server responds with 404.
var errNotFound = errors.New("source not found")

// Options are options for an Introspector.
type Options struct {
	// Client is the HTTP client used to fetch source files.
	Client *http.Client

	// URLTemplate is the primary source URL template. See
	// DefaultURLTemplate.
	URLTemplate string

	// FallbackTemplate is the URL template tried last. See
	// DefaultFallbackTemplate.
	FallbackTemplate string

	// Logger receives fetch progress and degraded lookups.
	Logger *log.Logger
}

// DefaultOptions is the default options for an Introspector.
var DefaultOptions = &Options{
	Client:           http.DefaultClient,
	URLTemplate:      DefaultURLTemplate,
	FallbackTemplate: DefaultFallbackTemplate,
	Logger:           log.New(io.Discard),
}

// Introspector looks up the public class names of modules by fetching
// their source over HTTP.
type Introspector struct {
	client           *http.Client
	urlTemplate      string
	fallbackTemplate string
	logger           *log.Logger
}

// New returns a new Introspector. Unset options take their value from
// DefaultOptions.
func New(options *Options) *Introspector {
	if options == nil {
		options = DefaultOptions
	}

	in := &Introspector{
		client:           options.Client,
		urlTemplate:      options.URLTemplate,
		fallbackTemplate: options.FallbackTemplate,
		logger:           options.Logger,
	}
	if in.client == nil {
		in.client = DefaultOptions.Client
	}
	if in.urlTemplate == "" {
		in.urlTemplate = DefaultOptions.URLTemplate
	}
	if in.fallbackTemplate == "" {
		in.fallbackTemplate = DefaultOptions.FallbackTemplate
	}
	if in.logger == nil {
		in.logger = DefaultOptions.Logger
	}
	return in
}

// URLs returns the URLs tried, in order, when looking up module at
// version: the module itself, the module as a package and the fallback.
func (in *Introspector) URLs(module, version string) []string {
	path := strings.ReplaceAll(module, ".", "/")
	return []string{
		expand(in.urlTemplate, version, path),
		expand(in.urlTemplate, version, path+"/__init__"),
		expand(in.fallbackTemplate, version, path),
	}
}

// ClassNames returns the public class names of module at version. A module
// that cannot be found, or whose source cannot be fetched, has no class
// names; the failure is logged and an empty set is returned.
func (in *Introspector) ClassNames(ctx context.Context, module, version string) ClassSet {
	urls := in.URLs(module, version)
	for _, u := range urls {
		names, err := in.fetch(ctx, u)
		if errors.Is(err, errNotFound) {
			in.logger.Debug("source not found", "module", module, "url", u)
			continue
		}
		if err != nil {
			in.logger.Warn("fetching source failed", "module", module, "version", version, "url", u, "err", err)
			return ClassSet{}
		}

		in.logger.Debug("fetched source", "module", module, "url", u, "classes", len(names))
		return names
	}

	in.logger.Warn("no source found", "module", module, "version", version, "url", urls[len(urls)-1])
	return ClassSet{}
}

// fetch retrieves the source at url and extracts its class names.
func (in *Introspector) fetch(ctx context.Context, url string) (ClassSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := in.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, maxSourceBytes)

	// Source browsers serve HTML pages rather than raw files.
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "text/html" {
		b, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}
		body = strings.NewReader(html2text.HTML2Text(string(b)))
	}

	return ExtractClassNames(body)
}

func expand(template, version, path string) string {
	return strings.NewReplacer("{version}", version, "{module}", path).Replace(template)
}
