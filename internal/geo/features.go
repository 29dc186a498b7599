// Package geo builds the GeoJSON payload for the houses map view.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"homeledger/server/internal/models"
)

// HouseFeatureCollection converts geocoded houses into a GeoJSON
// FeatureCollection. Houses without coordinates are skipped.
func HouseFeatureCollection(houses []models.House) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, house := range houses {
		if !house.HasCoordinates() {
			continue
		}

		feature := geojson.NewFeature(orb.Point{*house.Longitude, *house.Latitude})
		feature.Properties = geojson.Properties{
			"id":       house.ID,
			"nickname": house.Nickname,
			"city":     house.City,
			"country":  house.Country,
		}
		fc.Append(feature)
	}

	return fc
}
