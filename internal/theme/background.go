package theme

import (
	"github.com/desertthunder/turntable/internal/models"
)

// BrightTop is the top colour of every light background.
const BrightTop = "#FAFAFA"

// Gradient is a vertical background. Via, Via2 and To2 are optional.
type Gradient struct {
	Top  string `json:"top"`
	From string `json:"from"`
	Via  string `json:"via,omitempty"`
	Via2 string `json:"via2,omitempty"`
	To   string `json:"to"`
	To2  string `json:"to2,omitempty"`
}

// Stops returns the colours top to bottom, skipping unset ones.
func (g Gradient) Stops() []string {
	stops := make([]string, 0, 6)
	for _, c := range []string{g.Top, g.From, g.Via, g.Via2, g.To, g.To2} {
		if c != "" {
			stops = append(stops, c)
		}
	}
	return stops
}

type byTime map[models.TimeOfDay]string

var topColors = map[models.Weather]byTime{
	models.WeatherClear:        {models.Dawn: BrightTop, models.Day: BrightTop, models.Dusk: BrightTop, models.Night: "#2A2A4A"},
	models.WeatherClouds:       {models.Dawn: BrightTop, models.Day: BrightTop, models.Dusk: "#2F2F2F", models.Night: "#1C1C1C"},
	models.WeatherRain:         {models.Dawn: BrightTop, models.Day: BrightTop, models.Dusk: "#2F2F2F", models.Night: "#1A1A2A"},
	models.WeatherDrizzle:      {models.Dawn: BrightTop, models.Day: BrightTop, models.Dusk: "#2F2F2F", models.Night: "#1A1A2A"},
	models.WeatherThunderstorm: {models.Dawn: "#1C1C1C", models.Day: "#1C1C1C", models.Dusk: "#1C1C1C", models.Night: "#0A0A0A"},
	models.WeatherSnow:         {models.Dawn: BrightTop, models.Day: BrightTop, models.Dusk: BrightTop, models.Night: "#2A2A2A"},
	models.WeatherMist:         {models.Dawn: BrightTop, models.Day: BrightTop, models.Dusk: "#2F2F2F", models.Night: "#1C1C1C"},
	models.WeatherFog:          {models.Dawn: BrightTop, models.Day: BrightTop, models.Dusk: "#2F2F2F", models.Night: "#1C1C1C"},
	models.WeatherHaze:         {models.Dawn: BrightTop, models.Day: BrightTop, models.Dusk: "#2F2F2F", models.Night: "#1C1C1C"},
}

var (
	greyNight  = Gradient{From: "#2F2F2F", Via: "#252525", Via2: "#1A1A1A", To: "#0F0F0F", To2: "#000000"}
	wetNight   = Gradient{From: "#2A2A3A", Via: "#1F1F2F", Via2: "#151525", To: "#0F0F1A", To2: "#000000"}
	darkDusk   = Gradient{From: "#3A3A3A", Via: "#2F2F2F", Via2: "#252525", To: "#1A1A1A", To2: "#000000"}
	stormDay   = Gradient{From: "#1A1A1A", Via: "#151515", Via2: "#0F0F0F", To: "#0A0A0A", To2: "#000000"}
	paleSilver = Gradient{From: "#D3D3D3", Via: "#C0C0C0", To: "#A9A9A9"}
	hazeDay    = Gradient{From: "#E0E0E0", Via: "#D3D3D3", To: "#C0C0C0"}
	hazeDusk   = Gradient{From: "#A9A9A9", Via: "#808080", To: "#696969"}
)

var backgrounds = map[models.Weather]map[models.TimeOfDay]Gradient{
	models.WeatherClear: {
		models.Dawn:  {From: "#FFE5B4", Via: "#FFB347", To: "#FFA500"},
		models.Day:   {From: "#87CEEB", Via: "#87CEFA", To: "#B0E0E6"},
		models.Dusk:  {From: "#FF6347", Via: "#FF4500", To: "#FF8C00"},
		models.Night: {From: "#3A3A5C", Via: "#2A2A4A", Via2: "#1A1A3A", To: "#191970", To2: "#000033"},
	},
	models.WeatherClouds: {
		models.Dawn:  paleSilver,
		models.Day:   {From: "#B0C4DE", Via: "#778899", To: "#708090"},
		models.Dusk:  {From: "#696969", Via: "#808080", To: "#778899"},
		models.Night: greyNight,
	},
	models.WeatherRain: {
		models.Dawn:  {From: "#778899", Via: "#708090", To: "#696969"},
		models.Day:   {From: "#4682B4", Via: "#5F9EA0", To: "#708090"},
		models.Dusk:  darkDusk,
		models.Night: wetNight,
	},
	models.WeatherDrizzle: {
		models.Dawn:  {From: "#B0C4DE", Via: "#C0C0C0", To: "#A9A9A9"},
		models.Day:   {From: "#87CEEB", Via: "#B0C4DE", To: "#778899"},
		models.Dusk:  {From: "#778899", Via: "#696969", To: "#708090"},
		models.Night: wetNight,
	},
	models.WeatherThunderstorm: {
		models.Dawn:  stormDay,
		models.Day:   {From: "#1C1C1C", Via: "#151515", Via2: "#0F0F0F", To: "#0A0A0A", To2: "#000000"},
		models.Dusk:  stormDay,
		models.Night: {From: "#0A0A0A", Via: "#080808", Via2: "#050505", To: "#030303", To2: "#000000"},
	},
	models.WeatherSnow: {
		models.Dawn:  {From: "#E6E6FA", Via: "#D3D3D3", To: "#C0C0C0"},
		models.Day:   {From: "#F0F8FF", Via: "#E0E0E0", To: "#D3D3D3"},
		models.Dusk:  paleSilver,
		models.Night: greyNight,
	},
	models.WeatherMist: {
		models.Dawn:  paleSilver,
		models.Day:   hazeDay,
		models.Dusk:  hazeDusk,
		models.Night: greyNight,
	},
	models.WeatherFog: {
		models.Dawn:  {From: "#C0C0C0", Via: "#A9A9A9", To: "#808080"},
		models.Day:   paleSilver,
		models.Dusk:  darkDusk,
		models.Night: greyNight,
	},
	models.WeatherHaze: {
		models.Dawn:  paleSilver,
		models.Day:   hazeDay,
		models.Dusk:  hazeDusk,
		models.Night: greyNight,
	},
}

// TopColor returns the colour at the very top of the background.
func TopColor(m models.Mood) string {
	if c, ok := topColors[m.Weather][m.TimeOfDay]; ok {
		return c
	}
	return BrightTop
}

// IsDark reports whether text over the background should be light.
func IsDark(m models.Mood) bool {
	return TopColor(m) != BrightTop
}

// Background returns the gradient for a mood.
func Background(m models.Mood) Gradient {
	g, ok := backgrounds[m.Weather][m.TimeOfDay]
	if !ok {
		g = backgrounds[models.WeatherClear][m.TimeOfDay]
	}
	g.Top = TopColor(m)
	return g
}
