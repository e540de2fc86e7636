package mongostore

import (
    "context"
    "errors"
    "testing"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo/integration/mtest"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/repository"
)

func updated(n int) bson.D {
    return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n}, bson.E{Key: "nModified", Value: n})
}

// counted answers the aggregate CountDocuments runs.
func counted(mt *mtest.T, n int) bson.D {
    ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
    if n == 0 {
        return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch)
    }
    return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
}

func TestBookingUpdateStatus(t *testing.T) {
    mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

    mt.Run("applies when the status matches", func(mt *mtest.T) {
        mt.AddMockResponses(updated(1))
        r := &bookingRepo{c: mt.Coll}
        if err := r.UpdateStatus(context.Background(), "b1", model.BookingConfirmed, model.BookingCancelled); err != nil {
            mt.Fatalf("UpdateStatus: %v", err)
        }
    })

    mt.Run("missing booking is not found", func(mt *mtest.T) {
        mt.AddMockResponses(updated(0), counted(mt, 0))
        r := &bookingRepo{c: mt.Coll}
        err := r.UpdateStatus(context.Background(), "nope", model.BookingConfirmed, model.BookingCancelled)
        if !errors.Is(err, repository.ErrNotFound) {
            mt.Fatalf("want ErrNotFound, got %v", err)
        }
    })

    mt.Run("booking in another status conflicts", func(mt *mtest.T) {
        mt.AddMockResponses(updated(0), counted(mt, 1))
        r := &bookingRepo{c: mt.Coll}
        err := r.UpdateStatus(context.Background(), "b1", model.BookingConfirmed, model.BookingCancelled)
        if !errors.Is(err, repository.ErrConflict) {
            mt.Fatalf("want ErrConflict, got %v", err)
        }
    })

    mt.Run("update failure is returned as is", func(mt *mtest.T) {
        mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad value", Name: "BadValue"}))
        r := &bookingRepo{c: mt.Coll}
        err := r.UpdateStatus(context.Background(), "b1", model.BookingConfirmed, model.BookingCancelled)
        if err == nil || errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrConflict) {
            mt.Fatalf("want driver error, got %v", err)
        }
    })
}
