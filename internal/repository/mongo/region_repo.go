package mongo

import (
	"context"
	"errors"
	"time"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const regionCollectionName = "regions"

type regionDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	RegionName      string             `bson:"region_name"`
	MetaDescription string             `bson:"meta_description"`
	HeroTitle       string             `bson:"hero_title"`
	HeroSubtitle    string             `bson:"hero_subtitle"`
	RegionCity      string             `bson:"region_city"`
	RegionState     string             `bson:"region_state"`
	Facebook        string             `bson:"facebook"`
	Instagram       string             `bson:"instagram"`
	LinkedIn        string             `bson:"linkedin"`
	XTwitter        string             `bson:"x_twitter"`
	MapLat          float64            `bson:"map_lat"`
	MapLon          float64            `bson:"map_lon"`
	MapZoom         int                `bson:"map_zoom"`
	MapEmbedLink    string             `bson:"map_embed_link"`
	LogoURL         string             `bson:"logo_url"`
	HeroImageURL    string             `bson:"hero_image_url"`
	ContactFormURL  string             `bson:"contact_form_url"`
	FNGFormURL      string             `bson:"fng_form_url"`
	Placeholder     bool               `bson:"placeholder"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func (d regionDocument) toDomain() domain.Region {
	return domain.Region{
		ID:              d.ID.Hex(),
		RegionName:      d.RegionName,
		MetaDescription: d.MetaDescription,
		HeroTitle:       d.HeroTitle,
		HeroSubtitle:    d.HeroSubtitle,
		RegionCity:      d.RegionCity,
		RegionState:     d.RegionState,
		Facebook:        d.Facebook,
		Instagram:       d.Instagram,
		LinkedIn:        d.LinkedIn,
		XTwitter:        d.XTwitter,
		MapLat:          d.MapLat,
		MapLon:          d.MapLon,
		MapZoom:         d.MapZoom,
		MapEmbedLink:    d.MapEmbedLink,
		LogoURL:         d.LogoURL,
		HeroImageURL:    d.HeroImageURL,
		ContactFormURL:  d.ContactFormURL,
		FNGFormURL:      d.FNGFormURL,
		Placeholder:     d.Placeholder,
	}
}

// mongoRegionRepository implements repository.RegionRepository
type mongoRegionRepository struct {
	collection *mongo.Collection
}

// NewMongoRegionRepository creates a new Region repository.
func NewMongoRegionRepository(db *mongo.Database) repository.RegionRepository {
	return &mongoRegionRepository{
		collection: db.Collection(regionCollectionName),
	}
}

// FindOne returns the first stored region. Should more than one ever exist,
// the oldest wins.
func (r *mongoRegionRepository) FindOne(ctx context.Context) (*domain.Region, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	var doc regionDocument
	if err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	region := doc.toDomain()
	return &region, nil
}

// Create inserts a region record.
func (r *mongoRegionRepository) Create(ctx context.Context, region *domain.Region) (string, error) {
	doc := regionDocument{
		ID:              primitive.NewObjectID(),
		RegionName:      region.RegionName,
		MetaDescription: region.MetaDescription,
		HeroTitle:       region.HeroTitle,
		HeroSubtitle:    region.HeroSubtitle,
		RegionCity:      region.RegionCity,
		RegionState:     region.RegionState,
		Facebook:        region.Facebook,
		Instagram:       region.Instagram,
		LinkedIn:        region.LinkedIn,
		XTwitter:        region.XTwitter,
		MapLat:          region.MapLat,
		MapLon:          region.MapLon,
		MapZoom:         region.MapZoom,
		MapEmbedLink:    region.MapEmbedLink,
		LogoURL:         region.LogoURL,
		HeroImageURL:    region.HeroImageURL,
		ContactFormURL:  region.ContactFormURL,
		FNGFormURL:      region.FNGFormURL,
		Placeholder:     region.Placeholder,
		UpdatedAt:       time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	region.ID = doc.ID.Hex()
	return region.ID, nil
}

// UpdateByID merges the set fields of update with $set semantics.
func (r *mongoRegionRepository) UpdateByID(ctx context.Context, id string, update domain.RegionUpdate) (*domain.Region, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}

	set := bson.M{
		"placeholder": false,
		"updatedAt":   time.Now().UTC(),
	}
	putString(set, "region_name", update.RegionName)
	putString(set, "meta_description", update.MetaDescription)
	putString(set, "hero_title", update.HeroTitle)
	putString(set, "hero_subtitle", update.HeroSubtitle)
	putString(set, "region_city", update.RegionCity)
	putString(set, "region_state", update.RegionState)
	putString(set, "facebook", update.Facebook)
	putString(set, "instagram", update.Instagram)
	putString(set, "linkedin", update.LinkedIn)
	putString(set, "x_twitter", update.XTwitter)
	if update.MapLat != nil {
		set["map_lat"] = *update.MapLat
	}
	if update.MapLon != nil {
		set["map_lon"] = *update.MapLon
	}
	if update.MapZoom != nil {
		set["map_zoom"] = *update.MapZoom
	}
	putString(set, "map_embed_link", update.MapEmbedLink)
	putString(set, "logo_url", update.LogoURL)
	putString(set, "hero_image_url", update.HeroImageURL)
	putString(set, "contact_form_url", update.ContactFormURL)
	putString(set, "fng_form_url", update.FNGFormURL)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc regionDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	region := doc.toDomain()
	return &region, nil
}
