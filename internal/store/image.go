package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"streetnetwork.app/kinship/internal/model"
)

// ErrInvalidImageID is returned for ids that are not object ids.
var ErrInvalidImageID = errors.New("invalid image id")

type imageMetadata struct {
	UserID       int64     `bson:"userId"`
	Type         string    `bson:"type"`
	OriginalName string    `bson:"originalName"`
	ContentType  string    `bson:"contentType"`
	Size         int64     `bson:"size"`
	UploadDate   time.Time `bson:"uploadDate"`
}

type gridFSImageStore struct {
	db         *mongo.Database
	bucketName string
	bucket     *gridfs.Bucket
}

// NewImageStore opens the named GridFS bucket in db.
func NewImageStore(db *mongo.Database, bucketName string) (ImageStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("opening gridfs bucket %q: %w", bucketName, err)
	}
	return &gridFSImageStore{db: db, bucketName: bucketName, bucket: bucket}, nil
}

// streamBucket returns a bucket private to one stream operation. Stream
// deadlines live on the bucket, so requests must not share one.
func (s *gridFSImageStore) streamBucket(ctx context.Context) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(s.bucketName))
	if err != nil {
		return nil, fmt.Errorf("opening gridfs bucket %q: %w", s.bucketName, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetWriteDeadline(deadline); err != nil {
			return nil, err
		}
		if err := bucket.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
	}
	return bucket, nil
}

func (s *gridFSImageStore) Upload(ctx context.Context, upload ImageUpload, r io.Reader) (*model.Image, error) {
	bucket, err := s.streamBucket(ctx)
	if err != nil {
		return nil, err
	}

	meta := imageMetadata{
		UserID:       upload.UserID,
		Type:         string(upload.Type),
		OriginalName: upload.Filename,
		ContentType:  upload.ContentType,
		Size:         upload.Size,
		UploadDate:   time.Now().UTC(),
	}

	stream, err := bucket.OpenUploadStream(upload.Filename, options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return nil, fmt.Errorf("opening upload stream: %w", err)
	}

	written, err := io.Copy(stream, r)
	if err != nil {
		_ = stream.Abort()
		return nil, fmt.Errorf("writing image: %w", err)
	}
	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("closing upload stream: %w", err)
	}

	oid, _ := stream.FileID.(primitive.ObjectID)
	meta.Size = written
	return toImageModel(oid.Hex(), upload.Filename, meta), nil
}

func (s *gridFSImageStore) Get(ctx context.Context, id string) (*model.Image, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidImageID
	}

	cursor, err := s.bucket.FindContext(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("finding image: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}

	var file gridfs.File
	if err := cursor.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding image file: %w", err)
	}
	return fileToImage(file)
}

func (s *gridFSImageStore) Open(ctx context.Context, id string) (*model.Image, io.ReadCloser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil, ErrInvalidImageID
	}
	bucket, err := s.streamBucket(ctx)
	if err != nil {
		return nil, nil, err
	}

	stream, err := bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("opening download stream: %w", err)
	}

	img, err := fileToImage(*stream.GetFile())
	if err != nil {
		_ = stream.Close()
		return nil, nil, err
	}
	return img, stream, nil
}

func (s *gridFSImageStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidImageID
	}
	if err := s.bucket.DeleteContext(ctx, oid); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting image: %w", err)
	}
	return nil
}

func (s *gridFSImageStore) ListByUser(ctx context.Context, userID int64) ([]model.Image, error) {
	cursor, err := s.bucket.FindContext(ctx,
		bson.M{"metadata.userId": userID},
		options.GridFSFind().SetSort(bson.D{{Key: "uploadDate", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer cursor.Close(ctx)

	images := []model.Image{}
	for cursor.Next(ctx) {
		var file gridfs.File
		if err := cursor.Decode(&file); err != nil {
			return nil, fmt.Errorf("decoding image file: %w", err)
		}
		img, err := fileToImage(file)
		if err != nil {
			return nil, err
		}
		images = append(images, *img)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return images, nil
}

func fileToImage(file gridfs.File) (*model.Image, error) {
	var meta imageMetadata
	if len(file.Metadata) > 0 {
		if err := bson.Unmarshal(file.Metadata, &meta); err != nil {
			return nil, fmt.Errorf("decoding image metadata: %w", err)
		}
	}
	if meta.Size == 0 {
		meta.Size = file.Length
	}
	if meta.UploadDate.IsZero() {
		meta.UploadDate = file.UploadDate
	}

	var hexID string
	if oid, ok := file.ID.(primitive.ObjectID); ok {
		hexID = oid.Hex()
	}
	return toImageModel(hexID, file.Name, meta), nil
}

func toImageModel(id, filename string, meta imageMetadata) *model.Image {
	return &model.Image{
		ID:           id,
		UserID:       meta.UserID,
		Type:         model.ImageType(meta.Type),
		Filename:     filename,
		OriginalName: meta.OriginalName,
		ContentType:  meta.ContentType,
		Size:         meta.Size,
		UploadedAt:   meta.UploadDate,
	}
}
