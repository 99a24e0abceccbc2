package models

import (
	"strings"
	"time"
)

// Weather is a simplified weather condition.
type Weather string

const (
	WeatherClear        Weather = "Clear"
	WeatherClouds       Weather = "Clouds"
	WeatherRain         Weather = "Rain"
	WeatherDrizzle      Weather = "Drizzle"
	WeatherThunderstorm Weather = "Thunderstorm"
	WeatherSnow         Weather = "Snow"
	WeatherMist         Weather = "Mist"
	WeatherFog          Weather = "Fog"
	WeatherHaze         Weather = "Haze"
)

// AllWeather lists the supported conditions in display order.
var AllWeather = []Weather{
	WeatherClear, WeatherClouds, WeatherRain, WeatherDrizzle, WeatherThunderstorm,
	WeatherSnow, WeatherMist, WeatherFog, WeatherHaze,
}

var weatherLabels = map[Weather]string{
	WeatherClear:        "Sunny",
	WeatherClouds:       "Cloudy",
	WeatherRain:         "Rainy",
	WeatherDrizzle:      "Drizzly",
	WeatherThunderstorm: "Stormy",
	WeatherSnow:         "Snowy",
	WeatherMist:         "Misty",
	WeatherFog:          "Foggy",
	WeatherHaze:         "Hazy",
}

// ParseWeather accepts a condition name case-insensitively. The second
// result is false when the name was not recognised and Clear was returned.
func ParseWeather(s string) (Weather, bool) {
	s = strings.TrimSpace(s)
	for _, w := range AllWeather {
		if strings.EqualFold(string(w), s) {
			return w, true
		}
	}
	return WeatherClear, false
}

// Label is the adjective used in playlist titles.
func (w Weather) Label() string {
	if l, ok := weatherLabels[w]; ok {
		return l
	}
	return weatherLabels[WeatherClear]
}

// TimeOfDay splits the day into four listening moods.
type TimeOfDay string

const (
	Dawn  TimeOfDay = "dawn"
	Day   TimeOfDay = "day"
	Dusk  TimeOfDay = "dusk"
	Night TimeOfDay = "night"
)

var AllTimesOfDay = []TimeOfDay{Dawn, Day, Dusk, Night}

// TimeOfDayAt maps an hour of the day: dawn 6-9, day 9-17, dusk 17-19, night otherwise.
func TimeOfDayAt(hour int) TimeOfDay {
	switch {
	case hour >= 6 && hour < 9:
		return Dawn
	case hour >= 9 && hour < 17:
		return Day
	case hour >= 17 && hour < 19:
		return Dusk
	default:
		return Night
	}
}

// ParseTimeOfDay accepts dawn, day, dusk or night.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllTimesOfDay {
		if string(t) == s {
			return t, true
		}
	}
	return Day, false
}

func (t TimeOfDay) Label() string {
	switch t {
	case Dawn:
		return "morning"
	case Day:
		return "afternoon"
	case Dusk:
		return "evening"
	default:
		return "night"
	}
}

// Mood is the ambient context a deck is generated for.
type Mood struct {
	Weather   Weather   `json:"weather"`
	TimeOfDay TimeOfDay `json:"time_of_day"`
}

// MoodAt pairs a weather condition with the time of day of t.
func MoodAt(w Weather, t time.Time) Mood {
	return Mood{Weather: w, TimeOfDay: TimeOfDayAt(t.Hour())}
}

func (m Mood) String() string {
	return m.Weather.Label() + " " + m.TimeOfDay.Label()
}
