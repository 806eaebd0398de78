package cmd

import (
	httpadapter "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires the application graph: the unit-of-work factory,
// command and query handlers, and the HTTP server that exposes them.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

// CreateUnitOfWorkFactory exposes the raw unit-of-work factory for startup
// tasks that run outside a use case, such as seeding the super-admin account.
func (c *CompositionRoot) CreateUnitOfWorkFactory() ports.UnitOfWorkFactory {
	return c.uowFactory
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateChangeParcelStatusCommandHandler() commands.ChangeParcelStatusCommandHandler {
	return commands.NewChangeParcelStatusCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateCancelParcelCommandHandler() commands.CancelParcelCommandHandler {
	return commands.NewCancelParcelCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateBlockParcelCommandHandler() commands.BlockParcelCommandHandler {
	return commands.NewBlockParcelCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateUnblockParcelCommandHandler() commands.UnblockParcelCommandHandler {
	return commands.NewUnblockParcelCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateDeleteParcelCommandHandler() commands.DeleteParcelCommandHandler {
	return commands.NewDeleteParcelCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateFlagOverdueParcelsCommandHandler() commands.FlagOverdueParcelsCommandHandler {
	return commands.NewFlagOverdueParcelsCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateGetTrackingHistoryQueryHandler() queries.GetTrackingHistoryQueryHandler {
	return queries.NewGetTrackingHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUndeliveredParcelsQueryHandler() queries.GetUndeliveredParcelsQueryHandler {
	return queries.NewGetUndeliveredParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackParcelQueryHandler() queries.TrackParcelQueryHandler {
	return queries.NewTrackParcelQueryHandler(c.uowFactory.Create().ParcelRepository())
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateParcelCommandHandler(),
		c.CreateChangeParcelStatusCommandHandler(),
		c.CreateCancelParcelCommandHandler(),
		c.CreateConfirmDeliveryCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateBlockParcelCommandHandler(),
		c.CreateUnblockParcelCommandHandler(),
		c.CreateDeleteParcelCommandHandler(),
		c.CreateGetTrackingHistoryQueryHandler(),
		c.CreateGetUndeliveredParcelsQueryHandler(),
		c.CreateTrackParcelQueryHandler(),
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
