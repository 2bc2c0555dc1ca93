// Package modarchive turns The Mod Archive's HTML pages into typed values.
//
// Two extractors are provided. ExtractDetail reads a module detail page
// (index.php?request=view_by_moduleid) into a ModuleRecord, and
// ResolveSearch reads a filename search results page
// (index.php?request=search) into an ordered list of SearchMatch values.
// Both are pure functions of the page body: fetching is left to the caller.
//
// The detail page carries most of its metadata in a repeated list of
// <li class="stats"> items that have no per-item class, so those fields are
// read by position. Layout holds those positions and the label text around
// each value; DefaultLayout matches the current upstream markup.
package modarchive
