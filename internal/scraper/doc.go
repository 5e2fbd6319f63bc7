// Package scraper fetches the personal schedule calendar from the Altiplan
// web portal: it logs in once, walks month views backwards from the current
// month and extracts one raw day record per calendar cell.
package scraper
