// Package email sends transactional email through Postmark, or to disk in
// development. Bodies are rendered from templ components with Render.
package email
