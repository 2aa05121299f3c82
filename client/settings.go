// Package client serves the web front end: it finds and parses
// the HTML templates and serves the static resources that make
// up the puzzle workshop pages.
package client

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

const (
	applicationName                = "convert-nonogram"
	applicationVersion             = "0.2"
	templatePageSuffix             = "Page.tmpl.html"
	defaultTemplateDirectoryEnvVar = "TEMPLATE_DIRECTORY"
	defaultStaticDirectoryEnvVar   = "STATIC_DIRECTORY"
	iconPath                       = "/favicon.ico"
)

var (
	defaultStaticDirectory   = "static"
	defaultTemplateDirectory = filepath.Join(defaultStaticDirectory, "tmpl")
	staticResourcePaths      = map[string]string{
		"/robots.txt": filepath.Join("special", "robots.txt"),
	}
)

// VerifyResources - check that resources can be found, return
// error if not.
func VerifyResources() error {
	if fi, err := os.Stat(findStaticDirectory()); err != nil {
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("Static resource location %q not a directory.", findStaticDirectory())
	}
	if fi, err := os.Stat(findTemplateDirectory()); err != nil {
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("Template resource location %q not a directory.", findTemplateDirectory())
	}
	return nil
}

/*

handle static resources

*/

func findStaticDirectory() string {
	if dir := os.Getenv(defaultStaticDirectoryEnvVar); dir != "" {
		return dir
	}
	return defaultStaticDirectory
}

// StaticHandler serves the fixed static resources, returning
// whether the request path named one.
func StaticHandler(w http.ResponseWriter, r *http.Request) bool {
	path, ok := staticResourcePaths[r.URL.Path]
	if ok {
		log.Printf("Serving static resource for %q", r.URL.Path)
		fp := filepath.Join(findStaticDirectory(), path)
		http.ServeFile(w, r, fp)
	}
	return ok
}

/*

find templates

*/

func findTemplateDirectory() string {
	if dir := os.Getenv(defaultTemplateDirectoryEnvVar); dir != "" {
		return dir
	}
	return defaultTemplateDirectory
}

// applicationFooter - the footer line shared by every page
func applicationFooter() string {
	return fmt.Sprintf("%s version %s", applicationName, applicationVersion)
}
