// Package sound plays alarm sounds through the system audio device.
package sound
