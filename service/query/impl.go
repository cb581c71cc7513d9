package query

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/database/mongoclient"
	"github.com/mintleaf-xyz/venue/base/log"
)

const slowQueryThreshold = 500 * time.Millisecond

var timeNow = time.Now

type impl struct {
	client *mongoclient.Client
}

func New(client *mongoclient.Client) Mongo {
	return &impl{client: client}
}

func (im *impl) collection(table string) *mongo.Collection {
	return im.client.Database(im.client.DbName).Collection(table)
}

func (im *impl) Insert(c bCtx.Ctx, table string, doc Doc) error {
	defer im.slowLog(c, timeNow(), table, nil)
	if _, err := im.collection(table).InsertOne(c, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		c.WithFields(log.Fields{"table": table, "err": err}).Error("InsertOne failed")
		return err
	}
	return nil
}

func (im *impl) FindOne(c bCtx.Ctx, table string, selector Selector, result Doc) error {
	defer im.slowLog(c, timeNow(), table, selector)
	err := im.collection(table).FindOne(c, selector).Decode(result)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"table": table, "selector": selector, "err": err}).Error("FindOne failed")
		return err
	}
	return nil
}

func (im *impl) Count(c bCtx.Ctx, table string, selector Selector) (int, error) {
	defer im.slowLog(c, timeNow(), table, selector)
	cnt, err := im.collection(table).CountDocuments(c, selector)
	if err != nil {
		c.WithFields(log.Fields{"table": table, "selector": selector, "err": err}).Error("CountDocuments failed")
		return 0, err
	}
	return int(cnt), nil
}

func (im *impl) Upsert(c bCtx.Ctx, table string, selector Selector, doc Doc) error {
	defer im.slowLog(c, timeNow(), table, selector)
	opts := options.Replace().SetUpsert(true)
	if _, err := im.collection(table).ReplaceOne(c, selector, doc, opts); err != nil {
		c.WithFields(log.Fields{"table": table, "selector": selector, "err": err}).Error("ReplaceOne failed")
		return err
	}
	return nil
}

// Search sorts by the given field name, descending when prefixed with "-".
func (im *impl) Search(c bCtx.Ctx, table string, offset, limit int, sort string, selector Selector, result interface{}) error {
	defer im.slowLog(c, timeNow(), table, selector)
	opts := options.Find()
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if sort != "" {
		order := 1
		if strings.HasPrefix(sort, "-") {
			sort = sort[1:]
			order = -1
		}
		opts.SetSort(bson.D{{Key: sort, Value: order}})
	}
	cursor, err := im.collection(table).Find(c, selector, opts)
	if err != nil {
		c.WithFields(log.Fields{"table": table, "selector": selector, "err": err}).Error("Find failed")
		return err
	}
	if err := cursor.All(c, result); err != nil {
		c.WithFields(log.Fields{"table": table, "selector": selector, "err": err}).Error("cursor.All failed")
		return err
	}
	return nil
}

func (im *impl) Remove(c bCtx.Ctx, table string, selector Selector) error {
	defer im.slowLog(c, timeNow(), table, selector)
	res, err := im.collection(table).DeleteOne(c, selector)
	if err != nil {
		c.WithFields(log.Fields{"table": table, "selector": selector, "err": err}).Error("DeleteOne failed")
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) RemoveAll(c bCtx.Ctx, table string, selector Selector) (int, error) {
	defer im.slowLog(c, timeNow(), table, selector)
	res, err := im.collection(table).DeleteMany(c, selector)
	if err != nil {
		c.WithFields(log.Fields{"table": table, "selector": selector, "err": err}).Error("DeleteMany failed")
		return 0, err
	}
	return int(res.DeletedCount), nil
}

func (im *impl) Patch(c bCtx.Ctx, table string, selector Selector, update Update) error {
	defer im.slowLog(c, timeNow(), table, selector)
	res, err := im.collection(table).UpdateOne(c, selector, bson.M{"$set": update})
	if err != nil {
		c.WithFields(log.Fields{"table": table, "selector": selector, "err": err}).Error("UpdateOne failed")
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) Increment(c bCtx.Ctx, table string, selector Selector, result Doc, fieldAndAmounts map[string]int64) error {
	defer im.slowLog(c, timeNow(), table, selector)
	inc := bson.M{}
	for field, amount := range fieldAndAmounts {
		inc[field] = amount
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := im.collection(table).FindOneAndUpdate(c, selector, bson.M{"$inc": inc}, opts).Decode(result)
	if err != nil {
		c.WithFields(log.Fields{"table": table, "selector": selector, "err": err}).Error("FindOneAndUpdate failed")
		return err
	}
	return nil
}

func (im *impl) RunWithTransaction(c bCtx.Ctx, fn func(bCtx.Ctx) error) error {
	session, err := im.client.StartSession()
	if err != nil {
		c.WithField("err", err).Error("StartSession failed")
		return err
	}
	defer session.EndSession(c)

	_, err = session.WithTransaction(c, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(bCtx.Ctx{Context: sc, Logger: c.Logger})
	})
	return err
}

func (im *impl) slowLog(c bCtx.Ctx, start time.Time, table string, selector Selector) {
	elapsed := timeNow().Sub(start)
	if elapsed > slowQueryThreshold {
		c.WithFields(log.Fields{
			"table":    table,
			"selector": selector,
			"elapsed":  elapsed.String(),
		}).Warn("slow query")
	}
}
