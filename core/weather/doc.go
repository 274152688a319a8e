// Package weather keeps daily weather records per location and answers the
// aggregate queries used for seasonal planning: record highs, monthly
// averages, precipitation streaks and snow share.
package weather
