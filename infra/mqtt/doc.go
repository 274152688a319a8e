// Package mqtt publishes truck manifests to an MQTT broker with Eclipse Paho.
// Manifests are JSON documents sent to <prefix>/truck/<id>/manifest.
package mqtt
