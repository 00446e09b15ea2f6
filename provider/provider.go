package provider

import (
	"essay-assess/biz/application/service"
	"essay-assess/biz/infrastructure/cache"
	"essay-assess/biz/infrastructure/config"
	"essay-assess/biz/infrastructure/lock"
	"essay-assess/biz/infrastructure/repository/correction"
	"essay-assess/biz/infrastructure/repository/criteria"
	"essay-assess/biz/infrastructure/repository/essay"
	"essay-assess/biz/infrastructure/repository/task"
	"essay-assess/biz/infrastructure/repository/writing"

	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config            *config.Config
	WritingService    service.IWritingService
	CorrectionService service.ICorrectionService
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.WritingServiceSet,
	service.CorrectionServiceSet,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,

	task.NewMongoMapper,
	wire.Bind(new(task.IMongoMapper), new(*task.MongoMapper)),
	task.NewResourceMongoMapper,
	wire.Bind(new(task.IResourceMongoMapper), new(*task.ResourceMongoMapper)),

	essay.NewMongoMapper,
	wire.Bind(new(essay.IMongoMapper), new(*essay.MongoMapper)),
	essay.NewStepMongoMapper,
	wire.Bind(new(essay.IStepMongoMapper), new(*essay.StepMongoMapper)),

	correction.NewItemMongoMapper,
	wire.Bind(new(correction.IItemMongoMapper), new(*correction.ItemMongoMapper)),
	correction.NewCorrectorMongoMapper,
	wire.Bind(new(correction.ICorrectorMongoMapper), new(*correction.CorrectorMongoMapper)),
	correction.NewSummaryMongoMapper,
	wire.Bind(new(correction.ISummaryMongoMapper), new(*correction.SummaryMongoMapper)),
	correction.NewCommentMongoMapper,
	wire.Bind(new(correction.ICommentMongoMapper), new(*correction.CommentMongoMapper)),
	correction.NewPointsMongoMapper,
	wire.Bind(new(correction.IPointsMongoMapper), new(*correction.PointsMongoMapper)),
	correction.NewPreferencesMongoMapper,
	wire.Bind(new(correction.IPreferencesMongoMapper), new(*correction.PreferencesMongoMapper)),

	writing.NewNoteMongoMapper,
	wire.Bind(new(writing.INoteMongoMapper), new(*writing.NoteMongoMapper)),
	writing.NewPreferencesMongoMapper,
	wire.Bind(new(writing.IPreferencesMongoMapper), new(*writing.PreferencesMongoMapper)),

	criteria.NewMySQLMapper,
	wire.Bind(new(criteria.IMySQLMapper), new(*criteria.MySQLMapper)),

	cache.NewProcessedTextCacheMapper,
	wire.Bind(new(cache.IProcessedTextCacheMapper), new(*cache.ProcessedTextCacheMapper)),

	lock.NewRedisFactory,
	wire.Bind(new(lock.Factory), new(*lock.RedisFactory)),
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	InfrastructureSet,
)
