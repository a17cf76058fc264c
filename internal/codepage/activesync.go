// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codepage

// ActiveSync codepage ids.
const (
	AirSync         Page = 0
	Contacts        Page = 1
	Email           Page = 2
	FolderHierarchy Page = 7
	Provision       Page = 14
	Search          Page = 15
	GAL             Page = 16
	AirSyncBase     Page = 17
	ItemOperations  Page = 20
)

func activeSyncPages() []PageDef {
	return []PageDef{
		{
			ID:   AirSync,
			Name: "AirSync",
			Tags: map[string]byte{
				"Sync": 0x05, "Responses": 0x06, "Add": 0x07, "Change": 0x08,
				"Delete": 0x09, "Fetch": 0x0A, "SyncKey": 0x0B, "ClientId": 0x0C,
				"ServerId": 0x0D, "Status": 0x0E, "Collection": 0x0F, "Class": 0x10,
				"Version": 0x11, "CollectionId": 0x12, "GetChanges": 0x13,
				"MoreAvailable": 0x14, "WindowSize": 0x15, "Commands": 0x16,
				"Options": 0x17, "FilterType": 0x18, "Truncation": 0x19,
				"RtfTruncation": 0x1A, "Conflict": 0x1B, "Collections": 0x1C,
				"ApplicationData": 0x1D, "DeletesAsMoves": 0x1E, "NotifyGUID": 0x1F,
				"Supported": 0x20, "SoftDelete": 0x21, "MIMESupport": 0x22,
				"MIMETruncation": 0x23, "Wait": 0x24, "Limit": 0x25, "Partial": 0x26,
				"ConversationMode": 0x27, "MaxItems": 0x28, "HeartbeatInterval": 0x29,
			},
			Enums: map[string]map[string]string{
				"Class": {
					"Email": "Email", "Contacts": "Contacts", "Calendar": "Calendar",
					"Tasks": "Tasks", "Notes": "Notes", "SMS": "SMS",
				},
			},
		},
		{
			ID:   Contacts,
			Name: "Contacts",
			Tags: map[string]byte{
				"Anniversary": 0x05, "AssistantName": 0x06, "AssistantPhoneNumber": 0x07,
				"Birthday": 0x08, "Body": 0x09, "BodySize": 0x0A, "BodyTruncated": 0x0B,
				"Business2PhoneNumber": 0x0C, "BusinessCity": 0x0D, "BusinessCountry": 0x0E,
				"BusinessPostalCode": 0x0F, "BusinessState": 0x10, "BusinessStreet": 0x11,
				"BusinessFaxNumber": 0x12, "BusinessPhoneNumber": 0x13, "CarPhoneNumber": 0x14,
				"Categories": 0x15, "Category": 0x16, "Children": 0x17, "Child": 0x18,
				"CompanyName": 0x19, "Department": 0x1A, "Email1Address": 0x1B,
				"Email2Address": 0x1C, "Email3Address": 0x1D, "FileAs": 0x1E,
				"FirstName": 0x1F, "Home2PhoneNumber": 0x20, "HomeCity": 0x21,
				"HomeCountry": 0x22, "HomePostalCode": 0x23, "HomeState": 0x24,
				"HomeStreet": 0x25, "HomeFaxNumber": 0x26, "HomePhoneNumber": 0x27,
				"JobTitle": 0x28, "LastName": 0x29, "MiddleName": 0x2A,
				"MobilePhoneNumber": 0x2B, "OfficeLocation": 0x2C, "OtherCity": 0x2D,
				"OtherCountry": 0x2E, "OtherPostalCode": 0x2F, "OtherState": 0x30,
				"OtherStreet": 0x31, "PagerNumber": 0x32, "RadioPhoneNumber": 0x33,
				"Spouse": 0x34, "Suffix": 0x35, "Title": 0x36, "WebPage": 0x37,
				"YomiCompanyName": 0x38, "YomiFirstName": 0x39, "YomiLastName": 0x3A,
				"CompressedRTF": 0x3B, "Picture": 0x3C, "Alias": 0x3D, "WeightedRank": 0x3E,
			},
		},
		{
			ID:   Email,
			Name: "Email",
			Tags: map[string]byte{
				"Attachment": 0x05, "Attachments": 0x06, "AttName": 0x07, "AttSize": 0x08,
				"Att0Id": 0x09, "AttMethod": 0x0A, "AttRemoved": 0x0B, "Body": 0x0C,
				"BodySize": 0x0D, "BodyTruncated": 0x0E, "DateReceived": 0x0F,
				"DisplayName": 0x10, "DisplayTo": 0x11, "Importance": 0x12,
				"MessageClass": 0x13, "Subject": 0x14, "Read": 0x15, "To": 0x16,
				"Cc": 0x17, "From": 0x18, "ReplyTo": 0x19, "AllDayEvent": 0x1A,
				"Categories": 0x1B, "Category": 0x1C, "DTStamp": 0x1D, "EndTime": 0x1E,
				"InstanceType": 0x1F, "BusyStatus": 0x20, "Location": 0x21,
				"MeetingRequest": 0x22, "Organizer": 0x23, "RecurrenceId": 0x24,
				"Reminder": 0x25, "ResponseRequested": 0x26, "Recurrences": 0x27,
				"Recurrence": 0x28, "Type": 0x29, "Until": 0x2A, "Occurrences": 0x2B,
				"Interval": 0x2C, "DayOfWeek": 0x2D, "DayOfMonth": 0x2E,
				"WeekOfMonth": 0x2F, "MonthOfYear": 0x30, "StartTime": 0x31,
				"Sensitivity": 0x32, "TimeZone": 0x33, "GlobalObjId": 0x34,
				"ThreadTopic": 0x35, "MIMEData": 0x36, "MIMETruncated": 0x37,
				"MIMESize": 0x38, "InternetCPID": 0x39, "Flag": 0x3A, "FlagStatus": 0x3B,
				"ContentClass": 0x3C, "FlagType": 0x3D, "CompleteTime": 0x3E,
				"DisallowNewTimeProposal": 0x3F,
			},
		},
		{
			ID:   FolderHierarchy,
			Name: "FolderHierarchy",
			Tags: map[string]byte{
				"Folders": 0x05, "Folder": 0x06, "DisplayName": 0x07, "ServerId": 0x08,
				"ParentId": 0x09, "Type": 0x0A, "Response": 0x0B, "Status": 0x0C,
				"ContentClass": 0x0D, "Changes": 0x0E, "Add": 0x0F, "Delete": 0x10,
				"Update": 0x11, "SyncKey": 0x12, "FolderCreate": 0x13,
				"FolderDelete": 0x14, "FolderUpdate": 0x15, "FolderSync": 0x16,
				"Count": 0x17,
			},
			Enums: map[string]map[string]string{
				"Type": {
					"Generic": "1", "DefaultInbox": "2", "DefaultDrafts": "3",
					"DefaultDeleted": "4", "DefaultSent": "5", "DefaultOutbox": "6",
					"DefaultTasks": "7", "DefaultCalendar": "8", "DefaultContacts": "9",
					"DefaultNotes": "10", "DefaultJournal": "11", "Mail": "12",
					"Calendar": "13", "Contacts": "14", "Tasks": "15", "Journal": "16",
					"Notes": "17", "ServerUnknown": "18", "RecipientInfoCache": "19",
				},
				"Status": {
					"Success": "1", "FolderExists": "2", "SystemFolder": "3",
					"FolderNotFound": "4", "ParentFolderNotFound": "5", "ServerError": "6",
					"InvalidSyncKey": "9", "MalformedRequest": "10", "UnknownError": "11",
					"CodeUnknown": "12",
				},
			},
		},
		{
			ID:   Provision,
			Name: "Provision",
			Tags: map[string]byte{
				"Provision": 0x05, "Policies": 0x06, "Policy": 0x07, "PolicyType": 0x08,
				"PolicyKey": 0x09, "Data": 0x0A, "Status": 0x0B, "RemoteWipe": 0x0C,
				"EASProvisionDoc": 0x0D, "DevicePasswordEnabled": 0x0E,
				"AlphanumericDevicePasswordRequired": 0x0F,
				"RequireStorageCardEncryption":       0x10,
				"PasswordRecoveryEnabled":            0x11, "AttachmentsEnabled": 0x13,
				"MinDevicePasswordLength": 0x14, "MaxInactivityTimeDeviceLock": 0x15,
				"MaxDevicePasswordFailedAttempts": 0x16, "MaxAttachmentSize": 0x17,
				"AllowSimpleDevicePassword": 0x18, "DevicePasswordExpiration": 0x19,
				"DevicePasswordHistory": 0x1A,
			},
		},
		{
			ID:   Search,
			Name: "Search",
			Tags: map[string]byte{
				"Search": 0x05, "Stores": 0x06, "Store": 0x07, "Name": 0x08,
				"Query": 0x09, "Options": 0x0A, "Range": 0x0B, "Status": 0x0C,
				"Response": 0x0D, "Result": 0x0E, "Properties": 0x0F, "Total": 0x10,
				"EqualTo": 0x11, "Value": 0x12, "And": 0x13, "Or": 0x14,
				"FreeText": 0x15, "DeepTraversal": 0x17, "LongId": 0x18,
				"RebuildResults": 0x19, "LessThan": 0x1A, "GreaterThan": 0x1B,
				"UserName": 0x1E, "Password": 0x1F, "ConversationId": 0x20,
				"Picture": 0x21, "MaxSize": 0x22, "MaxPictures": 0x23,
			},
			Enums: map[string]map[string]string{
				"Status": {
					"Success": "1", "InvalidRequest": "2", "ServerError": "3",
					"BadLink": "4", "AccessDenied": "5", "NotFound": "6",
					"ConnectionFailure": "7", "TooComplex": "8", "Timeout": "10",
					"SyncFolders": "11", "EndOfRange": "12", "AccessBlocked": "13",
					"CredentialsRequired": "14",
				},
			},
		},
		{
			ID:   GAL,
			Name: "GAL",
			Tags: map[string]byte{
				"DisplayName": 0x05, "Phone": 0x06, "Office": 0x07, "Title": 0x08,
				"Company": 0x09, "Alias": 0x0A, "FirstName": 0x0B, "LastName": 0x0C,
				"HomePhone": 0x0D, "MobilePhone": 0x0E, "EmailAddress": 0x0F,
				"Picture": 0x10, "Status": 0x11, "Data": 0x12,
			},
		},
		{
			ID:   AirSyncBase,
			Name: "AirSyncBase",
			Tags: map[string]byte{
				"BodyPreference": 0x05, "Type": 0x06, "TruncationSize": 0x07,
				"AllOrNone": 0x08, "Body": 0x0A, "Data": 0x0B, "EstimatedDataSize": 0x0C,
				"Truncated": 0x0D, "Attachments": 0x0E, "Attachment": 0x0F,
				"DisplayName": 0x10, "FileReference": 0x11, "Method": 0x12,
				"ContentId": 0x13, "ContentLocation": 0x14, "IsInline": 0x15,
				"NativeBodyType": 0x16, "ContentType": 0x17, "Preview": 0x18,
				"BodyPartPreference": 0x19, "BodyPart": 0x1A, "Status": 0x1B,
			},
		},
		{
			ID:   ItemOperations,
			Name: "ItemOperations",
			Tags: map[string]byte{
				"ItemOperations": 0x05, "Fetch": 0x06, "Store": 0x07, "Options": 0x08,
				"Range": 0x09, "Total": 0x0A, "Properties": 0x0B, "Data": 0x0C,
				"Status": 0x0D, "Response": 0x0E, "Version": 0x0F, "Schema": 0x10,
				"Part": 0x11, "EmptyFolderContents": 0x12, "DeleteSubFolders": 0x13,
				"UserName": 0x14, "Password": 0x15, "Move": 0x16, "DstFldId": 0x17,
				"ConversationId": 0x18, "MoveAlways": 0x19,
			},
		},
	}
}
