package builtin

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/stellarlinkco/deskmcp/internal/tool"
)

const weatherDescription = "Returns mock weather data for a location. Demonstrates a tool with multiple required, enum-constrained parameters."

var weatherConditions = []string{"Sunny", "Partly Cloudy", "Cloudy", "Rainy", "Windy"}

var weatherSchema = &tool.Schema{
	Type: "object",
	Properties: map[string]any{
		"location": map[string]any{
			"type":        "string",
			"description": "City or place to report weather for.",
		},
		"unit": map[string]any{
			"type":        "string",
			"description": "Temperature unit: F for Fahrenheit or C for Celsius.",
			"enum":        []string{"F", "C"},
		},
	},
	Required: []string{"location", "unit"},
}

// WeatherTool produces randomized mock weather readings.
type WeatherTool struct {
	rng *rand.Rand
	now func() time.Time
}

func NewWeatherTool() *WeatherTool {
	return &WeatherTool{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

func (t *WeatherTool) Name() string { return "get_weather" }

func (t *WeatherTool) Description() string { return weatherDescription }

func (t *WeatherTool) Schema() *tool.Schema { return weatherSchema }

func (t *WeatherTool) Metadata() tool.Metadata {
	return metadataFor(t.Name(), weatherDescription, weatherSchema, "utility", "demo", "weather")
}

func (t *WeatherTool) Validate(args map[string]any) tool.ValidationResult {
	result := tool.ValidOK()

	location, present, isString := stringParam(args, "location")
	if !present {
		result = result.Combine(tool.Invalid("'location' parameter is required"))
	} else if !isString || location == "" {
		result = result.Combine(tool.Invalid("'location' parameter must be a non-empty string"))
	}

	unit, present, isString := stringParam(args, "unit")
	if !present {
		result = result.Combine(tool.Invalid("'unit' parameter is required"))
	} else if !isString || (unit != "F" && unit != "C") {
		result = result.Combine(tool.Invalid("'unit' must be either 'F' (Fahrenheit) or 'C' (Celsius)."))
	}

	return result
}

func (t *WeatherTool) Execute(_ context.Context, _ *tool.Context, args map[string]any) tool.Result {
	location, _, _ := stringParam(args, "location")
	unit, _, _ := stringParam(args, "unit")

	tempF := 40 + t.rng.Float64()*60
	feelsF := tempF + t.rng.Float64()*6 - 3
	temp, feels := tempF, feelsF
	if unit == "C" {
		temp = (tempF - 32) * 5 / 9
		feels = (feelsF - 32) * 5 / 9
	}

	weather := map[string]any{
		"temperature": round1(temp),
		"condition":   weatherConditions[t.rng.Intn(len(weatherConditions))],
		"humidity":    20 + t.rng.Intn(70),
		"wind_speed":  round1(t.rng.Float64() * 25),
		"feels_like":  round1(feels),
		"visibility":  1 + t.rng.Intn(10),
		"timestamp":   t.now().UTC().Format(time.RFC3339),
	}
	return tool.JSON(map[string]any{
		"location": location,
		"unit":     unit,
		"weather":  weather,
	})
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
