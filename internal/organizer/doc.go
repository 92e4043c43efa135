// Package organizer performs the physical side of an image run: scanning
// the image directory, copying originals into a dated backup folder before
// anything is touched, and renaming files on disk. A file lock on the image
// directory keeps two runs from renaming the same pool concurrently.
package organizer
