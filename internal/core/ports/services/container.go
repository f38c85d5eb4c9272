package services

// ServiceContainer bundles the service facades for route registration.
type ServiceContainer struct {
	Auth     AuthSvcFacade
	Drawer   DrawerSvcFacade
	Session  SessionSvcFacade
	Transfer TransferSvcFacade
	Journal  JournalSvcFacade
	Balance  BalanceSvcFacade
}
