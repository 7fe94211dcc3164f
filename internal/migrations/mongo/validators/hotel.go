package validators

import "go.mongodb.org/mongo-driver/bson"

var HotelValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "location", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":         bson.M{"bsonType": "objectId"},
			"name":        bson.M{"bsonType": "string", "minLength": 2, "maxLength": 200},
			"location":    bson.M{"bsonType": "string", "minLength": 2, "maxLength": 200},
			"description": bson.M{"bsonType": "string", "maxLength": 2000},
			"created_at":  bson.M{"bsonType": "date"},
		},
	},
}

// RoomTypeValidator keeps total_rooms non-negative; admission control relies on it.
var RoomTypeValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"hotel_id", "name", "price", "total_rooms", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":      bson.M{"bsonType": "objectId"},
			"hotel_id": objectIDString,
			"name":     bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},
			"total_rooms": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},
			"inventory_version": bson.M{"bsonType": []string{"int", "long"}},
			"created_at":        bson.M{"bsonType": "date"},
		},
	},
}
