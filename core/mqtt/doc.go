// Package mqtt defines the truck manifest published after each scheduling
// run and the Publisher contract implemented by infra/mqtt.
package mqtt
