// Command podscribe converts Apple Podcasts TTML transcripts into plain-text
// files, naming each one from the episode metadata in the Podcasts library
// database.
package main
