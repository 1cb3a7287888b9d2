package kibana

import (
	"encoding/json"
	"fmt"
)

// The saved-object payloads below reproduce fixed Kibana API shapes.
// Several attributes (visState, panelsJSON, searchSourceJSON) are
// JSON-encoded strings nested inside the JSON payload; that is the
// saved-objects API format, not an accident.

type visualization struct {
	id    string
	title string
	state map[string]any
}

func visualizations() []visualization {
	return []visualization{
		{"top-artists", "Top Artists", termsPie("Top Artists", "artist.keyword")},
		{"top-genres", "Top Genres", termsPie("Top Genres", "genre.keyword")},
		{"music-by-year", "Music by Year", histogram("Music by Year", "year", 5)},
		{"bit-rate-distribution", "Bit Rate Distribution", histogram("Bit Rate Distribution", "bit_rate", 50)},
	}
}

func indexPatternPayload() map[string]any {
	return map[string]any{
		"attributes": map[string]any{
			"title":         indexPatternID,
			"timeFieldName": "date_added",
		},
	}
}

func visualizationPayload(title string, state map[string]any) map[string]any {
	return map[string]any{
		"attributes": map[string]any{
			"title":       title,
			"visState":    jsonString(state),
			"uiStateJSON": "{}",
			"description": "",
			"kibanaSavedObjectMeta": map[string]any{
				"searchSourceJSON": jsonString(map[string]any{
					"query":        map[string]any{"query": "", "language": "kuery"},
					"filter":       []any{},
					"indexRefName": "kibanaSavedObjectMeta.searchSourceJSON.index",
				}),
			},
		},
		"references": []any{
			map[string]any{
				"name": "kibanaSavedObjectMeta.searchSourceJSON.index",
				"type": "index-pattern",
				"id":   indexPatternID,
			},
		},
	}
}

func dashboardPayload() map[string]any {
	positions := []map[string]any{
		{"x": 0, "y": 0, "w": 24, "h": 15},
		{"x": 24, "y": 0, "w": 24, "h": 15},
		{"x": 0, "y": 15, "w": 48, "h": 15},
		{"x": 0, "y": 30, "w": 48, "h": 15},
	}

	var panels []any
	var references []any
	for i, vis := range visualizations() {
		panelID := fmt.Sprintf("panel_%d", i+1)
		panels = append(panels, map[string]any{
			"version":          "8.5.0",
			"type":             "visualization",
			"gridData":         positions[i],
			"panelIndex":       panelID,
			"embeddableConfig": map[string]any{},
			"panelRefName":     panelID,
		})
		references = append(references, map[string]any{
			"id":   vis.id,
			"name": panelID,
			"type": "visualization",
		})
	}
	references = append(references, map[string]any{
		"id":   indexPatternID,
		"name": "kibanaSavedObjectMeta.searchSourceJSON.index",
		"type": "index-pattern",
	})

	return map[string]any{
		"attributes": map[string]any{
			"title":       "iTunes Music Analysis",
			"hits":        0,
			"description": "Analysis of iTunes Music Library",
			"panelsJSON":  jsonString(panels),
			"optionsJSON": jsonString(map[string]any{"hidePanelTitles": false, "useMargins": true}),
			"version":     1,
			// Library dates reach back decades, so restore a very wide
			// relative range instead of Kibana's last-15-minutes default.
			"timeRestore": true,
			"timeFrom":    "now-100y",
			"timeTo":      "now",
			"refreshInterval": map[string]any{
				"pause": true,
				"value": 0,
			},
			"kibanaSavedObjectMeta": map[string]any{
				"searchSourceJSON": jsonString(map[string]any{
					"query":  map[string]any{"query": "", "language": "kuery"},
					"filter": []any{},
				}),
			},
		},
		"references": references,
	}
}

func termsPie(title, field string) map[string]any {
	return map[string]any{
		"title": title,
		"type":  "pie",
		"aggs": []any{
			map[string]any{
				"id":      "1",
				"enabled": true,
				"type":    "count",
				"schema":  "metric",
				"params":  map[string]any{},
			},
			map[string]any{
				"id":      "2",
				"enabled": true,
				"type":    "terms",
				"schema":  "segment",
				"params": map[string]any{
					"field":              field,
					"orderBy":            "1",
					"order":              "desc",
					"size":               10,
					"otherBucket":        true,
					"otherBucketLabel":   "Other",
					"missingBucket":      false,
					"missingBucketLabel": "Missing",
				},
			},
		},
		"params": map[string]any{
			"type":           "pie",
			"addTooltip":     true,
			"addLegend":      true,
			"legendPosition": "right",
			"isDonut":        false,
			"labels": map[string]any{
				"show":       true,
				"values":     true,
				"last_level": true,
				"truncate":   100,
			},
		},
	}
}

func histogram(title, field string, interval int) map[string]any {
	return map[string]any{
		"title": title,
		"type":  "histogram",
		"aggs": []any{
			map[string]any{
				"id":      "1",
				"enabled": true,
				"type":    "count",
				"schema":  "metric",
				"params":  map[string]any{},
			},
			map[string]any{
				"id":      "2",
				"enabled": true,
				"type":    "histogram",
				"schema":  "segment",
				"params": map[string]any{
					"field":           field,
					"interval":        interval,
					"min_doc_count":   1,
					"extended_bounds": map[string]any{},
				},
			},
		},
		"params": map[string]any{
			"type": "histogram",
			"grid": map[string]any{"categoryLines": false},
			"categoryAxes": []any{
				map[string]any{
					"id":       "CategoryAxis-1",
					"type":     "category",
					"position": "bottom",
					"show":     true,
					"style":    map[string]any{},
					"scale":    map[string]any{"type": "linear"},
					"labels":   map[string]any{"show": true, "filter": true, "truncate": 100},
					"title":    map[string]any{},
				},
			},
			"valueAxes": []any{
				map[string]any{
					"id":       "ValueAxis-1",
					"name":     "LeftAxis-1",
					"type":     "value",
					"position": "left",
					"show":     true,
					"style":    map[string]any{},
					"scale":    map[string]any{"type": "linear", "mode": "normal"},
					"labels":   map[string]any{"show": true, "rotate": 0, "filter": false, "truncate": 100},
					"title":    map[string]any{"text": "Count"},
				},
			},
			"seriesParams": []any{
				map[string]any{
					"show":                   true,
					"type":                   "histogram",
					"mode":                   "stacked",
					"data":                   map[string]any{"label": "Count", "id": "1"},
					"valueAxis":              "ValueAxis-1",
					"drawLinesBetweenPoints": true,
					"lineWidth":              2,
					"showCircles":            true,
				},
			},
			"addTooltip":     true,
			"addLegend":      true,
			"legendPosition": "right",
			"times":          []any{},
			"addTimeMarker":  false,
			"labels":         map[string]any{"show": false},
			"thresholdLine": map[string]any{
				"show":  false,
				"value": 10,
				"width": 1,
				"style": "full",
				"color": "#E7664C",
			},
		},
	}
}

// jsonString marshals v for embedding as a string attribute. The inputs
// are literal maps built above; marshaling them cannot fail.
func jsonString(v any) string {
	bs, _ := json.Marshal(v)
	return string(bs)
}
