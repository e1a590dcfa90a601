package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality.
type ServiceContainer struct {
	Matter   MatterSvcFacade
	Document DocumentSvcFacade
	Transfer TransferSvcFacade
	Activity ActivitySvcFacade
}
